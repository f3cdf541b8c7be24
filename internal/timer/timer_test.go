package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

var ctx = context.Background()

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 9, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeNotifier struct {
	grant     bool
	requested int
	notified  []string
}

func (n *fakeNotifier) RequestPermission(context.Context) bool {
	n.requested++
	return n.grant
}

func (n *fakeNotifier) Notify(_ context.Context, _, body string) error {
	n.notified = append(n.notified, body)
	return nil
}

func newTestTimer(t *testing.T, opts ...Option) (*Timer, *store.Store, *fakeClock) {
	t.Helper()
	s, err := store.New(ctx, kv.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	clock := newFakeClock()
	tm := New(s, append([]Option{WithClock(clock), WithManualTick()}, opts...)...)
	t.Cleanup(func() { tm.Close() })
	return tm, s, clock
}

// runToEnd ticks once per simulated second until the timer stops running.
func runToEnd(t *testing.T, tm *Timer, clock *fakeClock) *model.CalendarEvent {
	t.Helper()
	for i := 0; i < int(MaxDuration/time.Second)+1; i++ {
		clock.Advance(time.Second)
		e, err := tm.Tick(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if e != nil {
			return e
		}
	}
	t.Fatal("timer never completed")
	return nil
}

// ---------------------------------------------------------------------------
// Completion
// ---------------------------------------------------------------------------

func TestCompletionEmitsOneEvent(t *testing.T) {
	durations := append(append([]time.Duration{}, Presets...), time.Minute, 7*time.Minute, MaxDuration)
	for _, d := range durations {
		tm, s, clock := newTestTimer(t)
		if err := tm.SetDuration(d); err != nil {
			t.Fatal(err)
		}
		tm.SetTopic("Write report")
		if err := tm.Start(ctx); err != nil {
			t.Fatal(err)
		}

		e := runToEnd(t, tm, clock)
		if got := e.Duration(); got < d-time.Second || got > d+time.Second {
			t.Errorf("%v: event duration = %v", d, got)
		}
		if !e.CreatedFromTimer || e.Title != "Write report" {
			t.Errorf("%v: event = %+v", d, e)
		}
		if n := len(s.CalendarEvents()); n != 1 {
			t.Errorf("%v: stored events = %d, want 1", d, n)
		}
		sessions := s.TimerSessions()
		if len(sessions) != 1 || !sessions[0].Completed || sessions[0].PlannedSeconds != int(d/time.Second) {
			t.Errorf("%v: sessions = %+v", d, sessions)
		}
		if snap := tm.Snapshot(); snap.State != Idle || snap.Remaining != d || !snap.StartedAt.IsZero() {
			t.Errorf("%v: after completion = %+v", d, snap)
		}
	}
}

func TestNotificationPermission(t *testing.T) {
	n := &fakeNotifier{grant: true}
	tm, _, clock := newTestTimer(t, WithNotifier(n))
	tm.SetDuration(time.Minute)
	tm.SetTopic("a")

	tm.Start(ctx)
	tm.Pause()
	tm.Start(ctx)
	runToEnd(t, tm, clock)
	tm.Start(ctx)

	if n.requested != 1 {
		t.Fatalf("permission requested %d times, want 1", n.requested)
	}
	if len(n.notified) != 1 || n.notified[0] != "a" {
		t.Fatalf("notified = %v", n.notified)
	}
}

func TestNoNotificationWithoutPermission(t *testing.T) {
	n := &fakeNotifier{grant: false}
	tm, _, clock := newTestTimer(t, WithNotifier(n))
	tm.SetDuration(time.Minute)
	tm.SetTopic("a")
	tm.Start(ctx)
	runToEnd(t, tm, clock)
	if len(n.notified) != 0 {
		t.Fatalf("notified = %v", n.notified)
	}
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

func TestStartWithoutTopic(t *testing.T) {
	tm, s, _ := newTestTimer(t)
	before := tm.Snapshot()
	if err := tm.Start(ctx); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	tm.SetTopic("   ")
	if err := tm.Start(ctx); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("blank topic err = %v", err)
	}
	if after := tm.Snapshot(); after != before {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
	if e, _ := tm.FinishEarly(ctx); e != nil || len(s.CalendarEvents()) != 0 {
		t.Fatal("event emitted without a session")
	}
}

func TestPauseResume(t *testing.T) {
	tm, _, clock := newTestTimer(t)
	tm.SetTopic("a")
	tm.Start(ctx)
	started := tm.Snapshot().StartedAt

	clock.Advance(time.Second)
	tm.Tick(ctx)
	tm.Pause()
	tm.Tick(ctx)
	snap := tm.Snapshot()
	if snap.State != Paused || snap.Remaining != DefaultDuration-time.Second {
		t.Fatalf("paused = %+v", snap)
	}
	if !snap.StartedAt.Equal(started) {
		t.Fatal("pause cleared startedAt")
	}

	tm.Resume()
	tm.Tick(ctx)
	if got := tm.Snapshot().Remaining; got != DefaultDuration-2*time.Second {
		t.Fatalf("Remaining = %v", got)
	}
}

func TestPausedSessionKeepsTopic(t *testing.T) {
	tm, s, clock := newTestTimer(t, WithDuration(time.Minute))
	tm.SetTopic("a")
	tm.Start(ctx)
	clock.Advance(time.Second)
	tm.Tick(ctx)
	tm.Pause()

	if err := tm.SetTopic("  "); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("clearing topic while paused err = %v, want ErrInvalid", err)
	}
	if got := tm.Snapshot().Topic; got != "a" {
		t.Fatalf("Topic = %q, want a", got)
	}
	if err := tm.SetTopic("b"); err != nil {
		t.Fatalf("renaming paused session: %v", err)
	}
	if err := tm.Start(ctx); err != nil {
		t.Fatal(err)
	}

	e := runToEnd(t, tm, clock)
	if e.Title != "b" {
		t.Fatalf("Title = %q, want b", e.Title)
	}
	if n := len(s.CalendarEvents()); n != 1 {
		t.Fatalf("events = %d, want 1", n)
	}
}

func TestResetTwiceIsNoop(t *testing.T) {
	tm, s, _ := newTestTimer(t)
	tm.SetTopic("a")
	tm.Start(ctx)
	tm.Reset()
	first := tm.Snapshot()
	tm.Reset()
	if second := tm.Snapshot(); second != first {
		t.Fatalf("second reset changed state: %+v -> %+v", first, second)
	}
	if first.State != Idle || len(s.CalendarEvents()) != 0 {
		t.Fatalf("after reset = %+v, events = %d", first, len(s.CalendarEvents()))
	}
}

func TestFinishEarly(t *testing.T) {
	tm, s, clock := newTestTimer(t)
	tm.SetTopic("Reading")
	tm.Start(ctx)
	clock.Advance(10 * time.Minute)
	tm.Pause()

	e, err := tm.FinishEarly(ctx)
	if err != nil || e == nil {
		t.Fatalf("FinishEarly = %v, %v", e, err)
	}
	if e.Duration() != 10*time.Minute || !e.CreatedFromTimer {
		t.Fatalf("event = %+v", e)
	}
	if sessions := s.TimerSessions(); len(sessions) != 1 || sessions[0].Completed {
		t.Fatalf("sessions = %+v", sessions)
	}
	if tm.Snapshot().State != Idle {
		t.Fatal("not reset")
	}
}

func TestSetDuration(t *testing.T) {
	tm, _, _ := newTestTimer(t)
	for _, d := range []time.Duration{0, 30 * time.Second, 121 * time.Minute} {
		if err := tm.SetDuration(d); !errors.Is(err, model.ErrInvalid) {
			t.Errorf("SetDuration(%v) err = %v", d, err)
		}
	}
	if got := tm.Snapshot().Duration; got != DefaultDuration {
		t.Fatalf("Duration = %v after rejected changes", got)
	}

	tm.SetTopic("a")
	tm.Start(ctx)
	if err := tm.SetDuration(45 * time.Minute); !errors.Is(err, model.ErrTimerRunning) {
		t.Fatalf("while running err = %v", err)
	}
	if err := tm.SetTopic("b"); !errors.Is(err, model.ErrTimerRunning) {
		t.Fatalf("SetTopic while running err = %v", err)
	}

	tm.Pause()
	if err := tm.SetDuration(45 * time.Minute); err != nil {
		t.Fatal(err)
	}
	snap := tm.Snapshot()
	if snap.State != Idle || snap.Remaining != 45*time.Minute || !snap.StartedAt.IsZero() {
		t.Fatalf("after SetDuration while paused = %+v", snap)
	}
}

// ---------------------------------------------------------------------------
// Ticker goroutine
// ---------------------------------------------------------------------------

func TestTickerStopsOnPause(t *testing.T) {
	s, _ := store.New(ctx, kv.NewMemory())
	tm := New(s)
	defer tm.Close()

	tm.SetTopic("a")
	tm.Start(ctx)
	tm.Pause()
	remaining := tm.Snapshot().Remaining
	time.Sleep(1500 * time.Millisecond)
	if got := tm.Snapshot().Remaining; got != remaining {
		t.Fatalf("Remaining changed while paused: %v -> %v", remaining, got)
	}
}

func TestTickerCountsDown(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for real ticks")
	}
	s, _ := store.New(ctx, kv.NewMemory())
	tm := New(s)
	tm.SetTopic("a")
	tm.Start(ctx)
	time.Sleep(2500 * time.Millisecond)
	tm.Close()
	if got := tm.Snapshot().Remaining; got > DefaultDuration-2*time.Second {
		t.Fatalf("Remaining = %v, want at least two ticks", got)
	}
}
