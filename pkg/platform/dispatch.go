package platform

import "sync/atomic"

// dispatcher holds the host's UI-thread scheduler, or nil before one is registered.
var dispatcher atomic.Pointer[func(callback func())]

// RegisterDispatch installs the function that runs callbacks on the UI thread.
// The host calls it once at startup; passing nil removes it.
func RegisterDispatch(fn func(callback func())) {
	if fn == nil {
		dispatcher.Store(nil)
		return
	}
	dispatcher.Store(&fn)
}

// Dispatch hands callback to the registered UI-thread scheduler. It reports
// false, without running anything, when callback is nil or no scheduler has
// been registered; callers then decide whether to run it inline.
func Dispatch(callback func()) bool {
	fn := dispatcher.Load()
	if fn == nil || callback == nil {
		return false
	}
	(*fn)(callback)
	return true
}
