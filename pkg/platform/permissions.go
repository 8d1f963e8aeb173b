package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-drift/permissions/pkg/errors"
)

const permissionsChannelName = "drift/permissions"

// PermissionService checks and requests runtime permissions through the
// native permission subsystem. Identifiers are passed through untouched, so
// callers use the platform's own names (e.g. "android.permission.CAMERA").
type PermissionService struct {
	channel *MethodChannel

	// Only one system permission dialog can be on screen at a time. The lock
	// is held until native answers, even when the caller stops waiting.
	requestMu sync.Mutex

	listenersMu  sync.Mutex
	listeners    map[int64]func(permission, status string)
	nextListener int64
}

// Permissions is the singleton permission service.
var Permissions = newPermissionService()

func newPermissionService() *PermissionService {
	s := &PermissionService{
		channel:   NewMethodChannel(permissionsChannelName),
		listeners: make(map[int64]func(permission, status string)),
	}
	s.channel.SetHandler(s.handleCall)
	return s
}

// Check returns the raw status string the native side reports for the
// permission. It never shows a dialog.
func (s *PermissionService) Check(ctx context.Context, permission string) (string, error) {
	if err := contextError(ctx); err != nil {
		return "", err
	}
	result, err := s.channel.Invoke("check", map[string]any{
		"permission": permission,
	})
	if err != nil {
		return "", err
	}
	return parsePermissionStatus(result)
}

// Request asks the native side to request the permission, which may show a
// system dialog. It blocks until the native side answers or ctx is done.
// Requests are serialized: a request whose caller gave up still keeps later
// requests waiting until its dialog is answered.
func (s *PermissionService) Request(ctx context.Context, permission string) (string, error) {
	s.requestMu.Lock()
	if err := contextError(ctx); err != nil {
		s.requestMu.Unlock()
		return "", err
	}

	type reply struct {
		result any
		err    error
	}
	done := make(chan reply, 1)
	go func() {
		defer s.requestMu.Unlock()
		defer errors.RecoverWithCallback("permissions.request", func(r any) {
			done <- reply{err: fmt.Errorf("permissions: native request panicked: %v", r)}
		})
		result, err := s.channel.Invoke("request", map[string]any{
			"permission": permission,
		})
		done <- reply{result: result, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		return parsePermissionStatus(r.result)
	case <-ctx.Done():
		return "", contextError(ctx)
	}
}

// Listen registers fn for status changes native code reports, for example
// after the user toggles a permission in Settings. fn runs on the goroutine
// that delivered the change. The returned function removes the listener.
func (s *PermissionService) Listen(fn func(permission, status string)) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

func (s *PermissionService) removeListeners() {
	s.listenersMu.Lock()
	s.listeners = make(map[int64]func(permission, status string))
	s.listenersMu.Unlock()
}

// handleCall serves calls native code makes on the permissions channel.
func (s *PermissionService) handleCall(method string, args any) (any, error) {
	if method != "permissionChanged" {
		return nil, ErrMethodNotFound
	}

	m := parseMap(args)
	permission, status := parseString(m["permission"]), parseString(m["status"])
	if permission == "" || status == "" {
		parseErr := &errors.ParseError{
			Channel:  permissionsChannelName,
			DataType: "PermissionChange",
			Got:      args,
		}
		errors.Report(&errors.DriftError{
			Op:      "permissions.parseChange",
			Kind:    errors.KindParsing,
			Channel: permissionsChannelName,
			Err:     parseErr,
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, parseErr)
	}

	s.listenersMu.Lock()
	fns := make([]func(permission, status string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(permission, status)
	}
	return nil, nil
}

// OpenAppSettings opens the system settings page for this app, where users can
// manage permissions manually. Use this after a permission has been blocked
// and the app can no longer request it.
func (s *PermissionService) OpenAppSettings(ctx context.Context) error {
	if err := contextError(ctx); err != nil {
		return err
	}
	_, err := s.channel.Invoke("openSettings", nil)
	return err
}

// ShouldShowRationale reports whether the app should explain why it needs the
// permission before requesting it. Android-specific; iOS hosts answer false.
func (s *PermissionService) ShouldShowRationale(ctx context.Context, permission string) (bool, error) {
	if err := contextError(ctx); err != nil {
		return false, err
	}
	result, err := s.channel.Invoke("shouldShowRationale", map[string]any{
		"permission": permission,
	})
	if err != nil {
		return false, err
	}
	return parseBool(parseMap(result)["shouldShow"]), nil
}

func parsePermissionStatus(result any) (string, error) {
	if status := parseString(parseMap(result)["status"]); status != "" {
		return status, nil
	}
	return "", &errors.ParseError{
		Channel:  permissionsChannelName,
		DataType: "PermissionStatus",
		Got:      result,
	}
}

func contextError(ctx context.Context) error {
	switch ctx.Err() {
	case nil:
		return nil
	case context.DeadlineExceeded:
		return ErrTimeout
	default:
		return ErrCanceled
	}
}
