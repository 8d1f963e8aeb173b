package permissions

import (
	"context"
	"sync"

	"github.com/go-drift/permissions/pkg/platform"
)

// NativeSubsystem implements Subsystem over the platform permission channel.
type NativeSubsystem struct {
	svc *platform.PermissionService
}

// NewNativeSubsystem wraps svc. A nil svc uses platform.Permissions.
func NewNativeSubsystem(svc *platform.PermissionService) *NativeSubsystem {
	if svc == nil {
		svc = platform.Permissions
	}
	return &NativeSubsystem{svc: svc}
}

// QueryStatus implements Subsystem.
func (n *NativeSubsystem) QueryStatus(ctx context.Context, id ID) (Status, error) {
	s, err := n.svc.Check(ctx, string(id))
	return Status(s), err
}

// RequestPermission implements Subsystem.
func (n *NativeSubsystem) RequestPermission(ctx context.Context, id ID) (Status, error) {
	s, err := n.svc.Request(ctx, string(id))
	return Status(s), err
}

// OpenSettings sends the user to the app's page in system settings, the only
// way back from a blocked permission.
func (n *NativeSubsystem) OpenSettings(ctx context.Context) error {
	return n.svc.OpenAppSettings(ctx)
}

// ShouldShowRationale reports whether the app should explain why it needs the
// permission before requesting it. Only Android ever answers true.
func (n *NativeSubsystem) ShouldShowRationale(ctx context.Context, id ID) (bool, error) {
	return n.svc.ShouldShowRationale(ctx, string(id))
}

// Watch implements Watcher.
func (n *NativeSubsystem) Watch(fn func(ID, Status)) (cancel func()) {
	return n.svc.Listen(func(permission, status string) {
		fn(ID(permission), Status(status))
	})
}

var defaultGateway = sync.OnceValue(func() *Gateway {
	return New(NewNativeSubsystem(platform.Permissions))
})

// Default returns the process-wide Gateway backed by the native bridge.
func Default() *Gateway {
	return defaultGateway()
}

// Check runs Default().Check.
func Check(ctx context.Context, id ID, h Handler) {
	Default().Check(ctx, id, h)
}

// CheckOutcome runs Default().CheckOutcome.
func CheckOutcome(ctx context.Context, id ID) Outcome {
	return Default().CheckOutcome(ctx, id)
}

// Request runs Default().Request.
func Request(ctx context.Context, id ID) (Status, error) {
	return Default().Request(ctx, id)
}

// Listen runs Default().Listen.
func Listen(fn func(ID, Status)) (unsubscribe func()) {
	return Default().Listen(fn)
}
