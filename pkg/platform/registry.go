package platform

import (
	"sync"
)

// channelRegistry manages all registered method channels.
type channelRegistry struct {
	methodChannels map[string]*MethodChannel
	mu             sync.RWMutex
}

var registry = &channelRegistry{
	methodChannels: make(map[string]*MethodChannel),
}

func (r *channelRegistry) registerMethod(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.methodChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) getMethodChannel(name string) *MethodChannel {
	r.mu.RLock()
	ch := r.methodChannels[name]
	r.mu.RUnlock()
	return ch
}

// NativeBridge defines the interface for calling native platform code.
type NativeBridge interface {
	// InvokeMethod calls a method on the native side.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

var (
	bridgeMu     sync.RWMutex
	nativeBridge NativeBridge
)

// SetNativeBridge sets the native bridge implementation.
// Called by the host application's bridge glue during initialization.
func SetNativeBridge(bridge NativeBridge) {
	bridgeMu.Lock()
	nativeBridge = bridge
	bridgeMu.Unlock()
}

func currentBridge() NativeBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return nativeBridge
}

// invokeNative calls a method on the native side.
func invokeNative(channel string, codec MessageCodec, method string, args any) (any, error) {
	bridge := currentBridge()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}

	argsData, err := codec.Encode(args)
	if err != nil {
		return nil, err
	}

	resultData, err := bridge.InvokeMethod(channel, method, argsData)
	if err != nil {
		return nil, err
	}

	result, err := codec.Decode(resultData)
	if err != nil {
		return nil, err
	}
	if chErr := decodeChannelError(result); chErr != nil {
		return nil, chErr
	}
	return result, nil
}

// decodeChannelError recognizes the error envelope native code replies with
// when a call fails on its side: {"error": {"code": ..., "message": ...}}.
func decodeChannelError(result any) *ChannelError {
	e := parseMap(parseMap(result)["error"])
	if e == nil {
		return nil
	}
	code := parseString(e["code"])
	if code == "" {
		return nil
	}
	return &ChannelError{
		Code:    code,
		Message: parseString(e["message"]),
		Details: e["details"],
	}
}

// HandleMethodCall is called from the bridge when native invokes a Go method.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch := registry.getMethodChannel(channel)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	args, err := ch.codec.Decode(argsData)
	if err != nil {
		return nil, err
	}

	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}

	return ch.codec.Encode(result)
}

// ResetForTest resets global platform state for test isolation.
// It clears the native bridge, the dispatch function and every permission
// change listener. This should only be called from tests.
func ResetForTest() {
	SetNativeBridge(nil)
	RegisterDispatch(nil)
	Permissions.removeListeners()
}
