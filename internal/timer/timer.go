// Package timer implements the focus countdown. A finished or cut-short
// session becomes a calendar event.
package timer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
)

// State of the countdown.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

var stateNames = map[State]string{
	Idle:      "idle",
	Running:   "running",
	Paused:    "paused",
	Completed: "completed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Duration limits and presets.
const (
	MinDuration     = time.Minute
	MaxDuration     = 120 * time.Minute
	DefaultDuration = 25 * time.Minute
	tickInterval    = time.Second
)

var Presets = []time.Duration{
	15 * time.Minute,
	25 * time.Minute,
	45 * time.Minute,
	60 * time.Minute,
}

// Sink receives the results of a session. The store implements it.
type Sink interface {
	AddCalendarEvent(ctx context.Context, e model.CalendarEvent) (model.CalendarEvent, error)
	RecordTimerSession(ctx context.Context, s model.TimerSession) error
}

// Notifier delivers the completion notification.
type Notifier interface {
	RequestPermission(ctx context.Context) bool
	Notify(ctx context.Context, title, body string) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Timer) { t.clock = c }
}

// WithNotifier sets the completion notifier.
func WithNotifier(n Notifier) Option {
	return func(t *Timer) { t.notifier = n }
}

// WithDuration sets the initial duration. Out-of-range values are ignored.
func WithDuration(d time.Duration) Option {
	return func(t *Timer) {
		if validDuration(d) == nil {
			t.duration = d
		}
	}
}

// WithManualTick disables the ticker goroutine; the caller drives Tick.
func WithManualTick() Option {
	return func(t *Timer) { t.manual = true }
}

// Timer is safe for concurrent use.
type Timer struct {
	mu       sync.Mutex
	sink     Sink
	notifier Notifier
	clock    Clock
	manual   bool

	state     State
	topic     string
	duration  time.Duration
	remaining time.Duration
	startedAt time.Time

	askedPermission bool
	permitted       bool
	last            *model.CalendarEvent

	// gen invalidates ticks of a stopped ticker goroutine.
	gen     uint64
	stop    context.CancelFunc
	base    context.Context
	closeFn context.CancelFunc
	wg      sync.WaitGroup
}

// New returns an idle timer writing its sessions to sink.
func New(sink Sink, opts ...Option) *Timer {
	t := &Timer{
		sink:     sink,
		clock:    systemClock{},
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.remaining = t.duration
	t.base, t.closeFn = context.WithCancel(context.Background())
	return t
}

// Snapshot is the displayed state of the timer.
type Snapshot struct {
	State     State                `json:"state"`
	Topic     string               `json:"topic"`
	Duration  time.Duration        `json:"duration"`
	Remaining time.Duration        `json:"remaining"`
	StartedAt time.Time            `json:"startedAt,omitzero"`
	LastEvent *model.CalendarEvent `json:"lastEvent,omitempty"`
}

// Progress returns the elapsed fraction in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return 1 - float64(s.Remaining)/float64(s.Duration)
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *Timer) snapshot() Snapshot {
	s := Snapshot{
		State:     t.state,
		Topic:     t.topic,
		Duration:  t.duration,
		Remaining: t.remaining,
		StartedAt: t.startedAt,
	}
	if t.last != nil {
		e := *t.last
		s.LastEvent = &e
	}
	return s
}

func validDuration(d time.Duration) error {
	if d < MinDuration || d > MaxDuration {
		return fmt.Errorf("%w: duration must be between 1 and 120 minutes", model.ErrInvalid)
	}
	return nil
}

// SetTopic sets the focus topic. It is rejected while running, and a paused
// session cannot have its topic cleared.
func (t *Timer) SetTopic(topic string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		return model.ErrTimerRunning
	}
	topic = strings.TrimSpace(topic)
	if topic == "" && t.state == Paused {
		return fmt.Errorf("%w: a paused session needs a focus topic", model.ErrInvalid)
	}
	t.topic = topic
	return nil
}

// SetDuration selects a new duration. It is rejected while running;
// otherwise the session start is cleared and a paused timer becomes idle.
func (t *Timer) SetDuration(d time.Duration) error {
	if err := validDuration(d); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		return model.ErrTimerRunning
	}
	t.duration = d
	t.remaining = d
	t.startedAt = time.Time{}
	t.state = Idle
	return nil
}

// Start begins the countdown, or resumes a paused one. An empty topic is
// rejected without any change.
func (t *Timer) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		return nil
	}
	if t.topic == "" {
		return fmt.Errorf("%w: enter a focus topic first", model.ErrInvalid)
	}
	if t.state == Paused {
		t.run()
		return nil
	}
	if t.startedAt.IsZero() {
		t.startedAt = t.clock.Now()
		if !t.askedPermission && t.notifier != nil {
			t.askedPermission = true
			t.permitted = t.notifier.RequestPermission(ctx)
		}
	}
	t.run()
	logger.Info("Focus session started",
		logger.F("topic", t.topic),
		logger.F("duration", t.duration),
	)
	return nil
}

// Pause stops the countdown and keeps the session.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Running {
		return
	}
	t.halt()
	t.state = Paused
}

// Resume continues a paused countdown.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Paused {
		t.run()
	}
}

// Reset returns to idle with the full duration. No event is emitted.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

func (t *Timer) reset() {
	t.halt()
	t.state = Idle
	t.startedAt = time.Time{}
	t.remaining = t.duration
}

// Tick advances a running countdown by one second. When it reaches zero the
// session is recorded and the emitted event is returned.
func (t *Timer) Tick(ctx context.Context) (*model.CalendarEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tick(ctx)
}

func (t *Timer) tick(ctx context.Context) (*model.CalendarEvent, error) {
	if t.state != Running {
		return nil, nil
	}
	t.remaining -= tickInterval
	if t.remaining > 0 {
		return nil, nil
	}
	t.remaining = 0
	t.state = Completed
	e, err := t.emit(ctx, true)
	if err == nil && e != nil && t.permitted {
		if nerr := t.notifier.Notify(ctx, "Focus session complete", e.Title); nerr != nil {
			logger.Warn("Notification failed", logger.F("error", nerr))
		}
	}
	t.reset()
	return e, err
}

// FinishEarly ends a running or paused session now. If it has a start time
// and a topic the session is recorded as an event; the timer then resets.
func (t *Timer) FinishEarly(ctx context.Context) (*model.CalendarEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Running && t.state != Paused {
		return nil, nil
	}
	e, err := t.emit(ctx, false)
	t.reset()
	return e, err
}

// emit writes the session to the sink. Callers hold t.mu.
func (t *Timer) emit(ctx context.Context, completed bool) (*model.CalendarEvent, error) {
	if t.startedAt.IsZero() || t.topic == "" {
		return nil, nil
	}
	end := t.clock.Now()
	if !end.After(t.startedAt) {
		logger.Debug("Session too short to record", logger.F("topic", t.topic))
		return nil, nil
	}

	e, err := t.sink.AddCalendarEvent(ctx, model.CalendarEvent{
		Title:            t.topic,
		StartTime:        t.startedAt.UnixMilli(),
		EndTime:          end.UnixMilli(),
		CreatedFromTimer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("add session event: %w", err)
	}
	err = t.sink.RecordTimerSession(ctx, model.TimerSession{
		Topic:          t.topic,
		StartedAt:      e.StartTime,
		EndedAt:        e.EndTime,
		PlannedSeconds: int(t.duration / time.Second),
		Completed:      completed,
	})
	if err != nil {
		return &e, fmt.Errorf("record session: %w", err)
	}
	t.last = &e
	logger.Info("Focus session recorded",
		logger.F("topic", e.Title),
		logger.F("minutes", e.Duration().Round(time.Second).Minutes()),
		logger.F("completed", completed),
	)
	return &e, nil
}

// run switches to Running and starts the ticker. Callers hold t.mu.
func (t *Timer) run() {
	t.state = Running
	if t.manual {
		return
	}
	t.halt()
	ctx, cancel := context.WithCancel(t.base)
	t.stop = cancel
	gen := t.gen
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.mu.Lock()
				if t.gen != gen {
					t.mu.Unlock()
					return
				}
				if _, err := t.tick(ctx); err != nil {
					logger.Error("Failed to record focus session", logger.F("error", err))
				}
				t.mu.Unlock()
			}
		}
	}()
}

// halt stops the ticker. Once it returns no further tick of the old
// goroutine is applied. Callers hold t.mu.
func (t *Timer) halt() {
	t.gen++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// Close stops the ticker goroutine and waits for it to exit.
func (t *Timer) Close() error {
	t.mu.Lock()
	t.halt()
	t.mu.Unlock()
	t.closeFn()
	t.wg.Wait()
	return nil
}
