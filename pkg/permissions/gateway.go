// Package permissions checks and requests runtime permissions (location,
// camera, photo library, microphone, Bluetooth) on iOS and Android through a
// single interface.
//
// Callers pick a logical Name, resolve it with IDFor, and hand the ID to a
// Gateway:
//
//	permissions.Check(ctx, permissions.IDFor(permissions.Camera), permissions.Handler{
//		OnGranted: openCamera,
//		OnPreviouslyDenied: showRationale,
//		OnDenied: showSettingsHint,
//	})
//
// A status query that fails is treated as a denial. The failure itself is
// reported through pkg/errors so it can still be logged or inspected.
package permissions

import (
	"context"
	"fmt"

	"github.com/go-drift/permissions/pkg/errors"
	"github.com/go-drift/permissions/pkg/platform"
)

// Subsystem is the platform permission API a Gateway delegates to.
type Subsystem interface {
	// QueryStatus returns the current status without prompting the user.
	QueryStatus(ctx context.Context, id ID) (Status, error)
	// RequestPermission may prompt the user and returns the resulting status.
	RequestPermission(ctx context.Context, id ID) (Status, error)
}

// Watcher is implemented by subsystems that report status changes made
// outside the app, such as the user editing permissions in Settings.
type Watcher interface {
	Watch(fn func(ID, Status)) (cancel func())
}

// Handler holds the optional callbacks for Check. At most one of them runs
// per call.
type Handler struct {
	// OnDenied runs for unavailable and blocked permissions, and when the
	// status query fails.
	OnDenied func()
	// OnPreviouslyDenied runs when the permission was denied but may be
	// requested again.
	OnPreviouslyDenied func()
	// OnGranted runs for granted and limited permissions.
	OnGranted func()
}

func (h Handler) callback(o Outcome) func() {
	switch o {
	case OutcomeDenied:
		return h.OnDenied
	case OutcomePreviouslyDenied:
		return h.OnPreviouslyDenied
	case OutcomeGranted:
		return h.OnGranted
	default:
		return nil
	}
}

// Gateway mediates between application code and a Subsystem. It holds no
// per-call state and is safe for concurrent use.
type Gateway struct {
	sub      Subsystem
	dispatch func(func())
	report   func(*errors.DriftError)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithDispatch sets how Check delivers its callbacks. The default schedules
// them with platform.Dispatch and calls them directly when no dispatcher is
// registered.
func WithDispatch(fn func(func())) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.dispatch = fn
		}
	}
}

// WithReporter sets where swallowed query failures are sent. The default is
// errors.Report.
func WithReporter(fn func(*errors.DriftError)) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.report = fn
		}
	}
}

// New returns a Gateway backed by sub.
func New(sub Subsystem, opts ...Option) *Gateway {
	g := &Gateway{
		sub:      sub,
		dispatch: dispatchOnUI,
		report:   errors.Report,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func dispatchOnUI(cb func()) {
	if !platform.Dispatch(cb) {
		cb()
	}
}

// Check queries the permission's status without prompting and runs the
// matching callback from h. It returns immediately; the query and the
// callback happen asynchronously.
//
//	unavailable, blocked -> OnDenied
//	denied               -> OnPreviouslyDenied
//	limited, granted     -> OnGranted
//	anything else        -> nothing
//
// If the query fails, OnDenied runs and the error is reported rather than
// returned.
func (g *Gateway) Check(ctx context.Context, id ID, h Handler) {
	go func() {
		cb := h.callback(g.CheckOutcome(ctx, id))
		g.dispatch(func() {
			if cb != nil {
				cb()
			}
		})
	}()
}

// CheckOutcome is the synchronous form of Check: it blocks until the query
// resolves and returns the classified outcome. A failed query yields
// OutcomeDenied.
func (g *Gateway) CheckOutcome(ctx context.Context, id ID) Outcome {
	status, err := g.query(ctx, id)
	if err != nil {
		g.report(&errors.DriftError{
			Op:         "permissions.check",
			Kind:       errors.KindPlatform,
			Permission: string(id),
			Err:        err,
		})
		return OutcomeDenied
	}
	return Classify(status)
}

func (g *Gateway) query(ctx context.Context, id ID) (status Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &errors.PanicError{
				Op:         "permissions.check",
				Value:      r,
				StackTrace: errors.CaptureStack(),
			}
		}
	}()
	if g.sub == nil {
		return "", fmt.Errorf("permissions: no subsystem: %w", platform.ErrPlatformUnavailable)
	}
	return g.sub.QueryStatus(ctx, id)
}

// Request asks the platform for the permission, which may show a system
// dialog, and returns the resulting status unmodified. Errors from the
// platform are returned unchanged.
func (g *Gateway) Request(ctx context.Context, id ID) (Status, error) {
	if g.sub == nil {
		return "", fmt.Errorf("permissions: no subsystem: %w", platform.ErrPlatformUnavailable)
	}
	return g.sub.RequestPermission(ctx, id)
}

// Listen delivers status changes for every permission to fn, scheduled the
// same way Check delivers its callbacks. Subsystems that are not a Watcher
// never report changes; the returned function is then a no-op.
func (g *Gateway) Listen(fn func(ID, Status)) (unsubscribe func()) {
	w, ok := g.sub.(Watcher)
	if !ok || fn == nil {
		return func() {}
	}
	return w.Watch(func(id ID, s Status) {
		g.dispatch(func() { fn(id, s) })
	})
}

// DetermineStatus reports whether status grants access. See DetermineStatus.
func (g *Gateway) DetermineStatus(status Status) bool {
	return DetermineStatus(status)
}
