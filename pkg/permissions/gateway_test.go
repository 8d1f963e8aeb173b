package permissions

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/permissions/pkg/errors"
	"github.com/go-drift/permissions/pkg/platform"
)

// fakeSubsystem answers every call with a fixed status or error.
type fakeSubsystem struct {
	status Status
	err    error
	panics bool

	mu      sync.Mutex
	queried []ID
}

func (f *fakeSubsystem) QueryStatus(ctx context.Context, id ID) (Status, error) {
	f.mu.Lock()
	f.queried = append(f.queried, id)
	f.mu.Unlock()
	if f.panics {
		panic("subsystem exploded")
	}
	return f.status, f.err
}

func (f *fakeSubsystem) RequestPermission(ctx context.Context, id ID) (Status, error) {
	return f.status, f.err
}

// calls counts how often each Handler callback ran.
type calls struct {
	mu sync.Mutex

	denied, previouslyDenied, granted int
}

func (c *calls) handler() Handler {
	inc := func(n *int) func() {
		return func() {
			c.mu.Lock()
			*n++
			c.mu.Unlock()
		}
	}
	return Handler{
		OnDenied:           inc(&c.denied),
		OnPreviouslyDenied: inc(&c.previouslyDenied),
		OnGranted:          inc(&c.granted),
	}
}

// checkAndWait runs Check and waits for its dispatched delivery.
func checkAndWait(t *testing.T, sub Subsystem, id ID, h Handler, opts ...Option) []*errors.DriftError {
	t.Helper()
	done := make(chan struct{})
	var reported []*errors.DriftError
	opts = append(opts,
		WithDispatch(func(cb func()) {
			cb()
			close(done)
		}),
		WithReporter(func(err *errors.DriftError) { reported = append(reported, err) }),
	)
	New(sub, opts...).Check(context.Background(), id, h)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("check never delivered")
	}
	return reported
}

func TestCheckInvokesExactlyOneCallback(t *testing.T) {
	tests := []struct {
		status Status

		denied, previouslyDenied, granted int
	}{
		{Unavailable, 1, 0, 0},
		{Denied, 0, 1, 0},
		{Limited, 0, 0, 1},
		{Granted, 0, 0, 1},
		{Blocked, 1, 0, 0},
		{Status("provisional"), 0, 0, 0},
		{Status(""), 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			var c calls
			reported := checkAndWait(t, &fakeSubsystem{status: tt.status}, "android.permission.CAMERA", c.handler())

			assert.Equal(t, tt.denied, c.denied, "OnDenied")
			assert.Equal(t, tt.previouslyDenied, c.previouslyDenied, "OnPreviouslyDenied")
			assert.Equal(t, tt.granted, c.granted, "OnGranted")
			assert.Empty(t, reported)
		})
	}
}

func TestCheckCameraGranted(t *testing.T) {
	id, _ := Lookup(IOS, Camera)
	sub := &fakeSubsystem{status: Granted}
	n := 0
	checkAndWait(t, sub, id, Handler{OnGranted: func() { n++ }})

	assert.Equal(t, 1, n)
	assert.Equal(t, []ID{id}, sub.queried)
}

func TestCheckLocationPreviouslyDenied(t *testing.T) {
	id, _ := Lookup(Android, Location)
	var denied, granted, previously int
	checkAndWait(t, &fakeSubsystem{status: Denied}, id, Handler{
		OnDenied:           func() { denied++ },
		OnPreviouslyDenied: func() { previously++ },
		OnGranted:          func() { granted++ },
	})

	assert.Equal(t, 1, previously)
	assert.Zero(t, denied)
	assert.Zero(t, granted)
}

func TestCheckQueryFailureIsDenied(t *testing.T) {
	id, _ := Lookup(Android, Microphone)
	queryErr := stderrors.New("subsystem unreachable")
	var c calls
	reported := checkAndWait(t, &fakeSubsystem{err: queryErr}, id, c.handler())

	assert.Equal(t, 1, c.denied)
	assert.Zero(t, c.previouslyDenied+c.granted)
	require.Len(t, reported, 1)
	assert.Equal(t, "permissions.check", reported[0].Op)
	assert.Equal(t, errors.KindPlatform, reported[0].Kind)
	assert.Equal(t, string(id), reported[0].Permission)
	assert.ErrorIs(t, reported[0], queryErr)
}

func TestCheckQueryPanicIsDenied(t *testing.T) {
	var c calls
	reported := checkAndWait(t, &fakeSubsystem{panics: true}, "ios.permission.CAMERA", c.handler())

	assert.Equal(t, 1, c.denied)
	require.Len(t, reported, 1)
	var panicErr *errors.PanicError
	require.ErrorAs(t, reported[0], &panicErr)
	assert.Equal(t, "subsystem exploded", panicErr.Value)
}

func TestCheckWithEmptyHandler(t *testing.T) {
	reported := checkAndWait(t, &fakeSubsystem{status: Granted}, "ios.permission.CAMERA", Handler{})
	assert.Empty(t, reported)

	reported = checkAndWait(t, &fakeSubsystem{err: stderrors.New("down")}, "ios.permission.CAMERA", Handler{})
	assert.Len(t, reported, 1)
}

func TestCheckWithoutSubsystem(t *testing.T) {
	var c calls
	reported := checkAndWait(t, nil, "ios.permission.CAMERA", c.handler())

	assert.Equal(t, 1, c.denied)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], platform.ErrPlatformUnavailable)
}

func TestCheckOutcome(t *testing.T) {
	g := New(&fakeSubsystem{status: Limited})
	assert.Equal(t, OutcomeGranted, g.CheckOutcome(context.Background(), "ios.permission.PHOTO_LIBRARY"))

	var reported int
	g = New(&fakeSubsystem{err: stderrors.New("down")}, WithReporter(func(*errors.DriftError) { reported++ }))
	assert.Equal(t, OutcomeDenied, g.CheckOutcome(context.Background(), "ios.permission.PHOTO_LIBRARY"))
	assert.Equal(t, 1, reported)
}

func TestRequestPassesStatusThrough(t *testing.T) {
	for _, s := range []Status{Unavailable, Denied, Limited, Granted, Blocked, Status("weird")} {
		got, err := New(&fakeSubsystem{status: s}).Request(context.Background(), "android.permission.CAMERA")
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestRequestPropagatesError(t *testing.T) {
	reqErr := platform.NewChannelError("E_ACTIVITY", "no foreground activity")
	var reported int
	g := New(&fakeSubsystem{err: reqErr}, WithReporter(func(*errors.DriftError) { reported++ }))

	_, err := g.Request(context.Background(), "android.permission.CAMERA")
	assert.Same(t, reqErr, err)
	assert.Zero(t, reported)
}

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{Unavailable, false},
		{Denied, false},
		{Limited, true},
		{Granted, true},
		{Blocked, false},
		{Status("provisional"), false},
		{Status(""), false},
	}
	g := New(nil)
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetermineStatus(tt.status), tt.status)
		assert.Equal(t, tt.want, g.DetermineStatus(tt.status), tt.status)
	}
}

func TestClassifyAndOutcomeString(t *testing.T) {
	assert.Equal(t, OutcomeNone, Classify(Status("nope")))
	assert.Equal(t, "previously_denied", Classify(Denied).String())
	assert.Equal(t, "none", OutcomeNone.String())
	assert.True(t, Blocked.Known())
	assert.False(t, Status("nope").Known())
}

func TestDefaultDispatchFallsBackToDirectCall(t *testing.T) {
	t.Cleanup(platform.ResetForTest)
	ran := false
	dispatchOnUI(func() { ran = true })
	assert.True(t, ran)
}
