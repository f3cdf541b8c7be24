package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/store"
	"github.com/existflow/flownote/internal/timer"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T) (Model, *store.Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 9, 9, 0, 0, 0, time.Local)}
	st, err := store.New(context.Background(), kv.NewMemory(), store.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	tm := timer.New(st, timer.WithClock(clock), timer.WithManualTick())
	t.Cleanup(func() { tm.Close() })
	return NewModel(context.Background(), st, tm), st, clock
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// ============================================================
// Focus screen
// ============================================================

func TestStartsAskingForTopic(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.mode != ModeTopic {
		t.Fatalf("mode = %v, want topic input", m.mode)
	}
	m = press(m, "esc", " ")
	if m.timer.Snapshot().State != timer.Idle {
		t.Fatal("started without a topic")
	}
	if !m.isError || m.mode != ModeTopic {
		t.Fatalf("expected error and topic prompt, got %q mode=%v", m.message, m.mode)
	}
}

func TestFocusSessionFlow(t *testing.T) {
	m, st, clock := newTestModel(t)
	m = press(m, "Essay", "enter")
	if got := m.timer.Snapshot().Topic; got != "Essay" {
		t.Fatalf("Topic = %q", got)
	}

	m = press(m, "1", " ")
	snap := m.timer.Snapshot()
	if snap.State != timer.Running || snap.Duration != 15*time.Minute {
		t.Fatalf("snapshot = %+v", snap)
	}

	clock.now = clock.now.Add(time.Second)
	next, _ := m.Update(tickMsg(clock.now))
	m = next.(Model)
	if got := m.timer.Snapshot().Remaining; got != 15*time.Minute-time.Second {
		t.Fatalf("Remaining = %v", got)
	}

	m = press(m, " ")
	if m.timer.Snapshot().State != timer.Paused {
		t.Fatal("space should pause")
	}

	clock.now = clock.now.Add(5 * time.Minute)
	m = press(m, "f")
	events := st.CalendarEvents()
	if len(events) != 1 || !events[0].CreatedFromTimer || events[0].Title != "Essay" {
		t.Fatalf("events = %+v", events)
	}
	if m.todayMinutes != 5 {
		t.Fatalf("todayMinutes = %d, want 5", m.todayMinutes)
	}
	if !strings.Contains(m.View(), "Essay") {
		t.Fatal("view does not show the topic")
	}
}

func TestCustomDuration(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(m, "esc", "c", "90", "enter")
	if got := m.timer.Snapshot().Duration; got != 90*time.Minute {
		t.Fatalf("Duration = %v", got)
	}
	m = press(m, "c", "500", "enter")
	if got := m.timer.Snapshot().Duration; got != 90*time.Minute || !m.isError {
		t.Fatalf("out of range accepted: %v", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{59*time.Second + 900*time.Millisecond, "00:59"},
		{2 * time.Hour, "2:00:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
