// Package tui is the focus-timer screen.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/store"
	"github.com/existflow/flownote/internal/streak"
	"github.com/existflow/flownote/internal/timer"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeTopic
	ModeCustom
)

type tickMsg time.Time

// Model is the focus screen. The timer must be created with
// timer.WithManualTick; the model drives it once per second.
type Model struct {
	ctx   context.Context
	store *store.Store
	timer *timer.Timer

	width  int
	height int
	mode   Mode

	input textinput.Model
	bar   progress.Model

	todayMinutes int
	streak       int

	message string
	isError bool
}

// NewModel creates the focus screen model
func NewModel(ctx context.Context, st *store.Store, tm *timer.Timer) Model {
	logger.Info("Initializing focus screen")

	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40

	m := Model{
		ctx:   ctx,
		store: st,
		timer: tm,
		input: ti,
		bar:   progress.New(progress.WithGradient(string(Primary), string(Accent))),
	}
	m.refreshStats()
	if m.timer.Snapshot().Topic == "" {
		m.openInput(ModeTopic)
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the one-second tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), textinput.Blink)
}

// refreshStats recomputes the focus minutes of today and the week streak.
func (m *Model) refreshStats() {
	now := m.store.Now()
	total := time.Duration(0)
	for _, e := range m.store.EventsForDay(now) {
		if e.CreatedFromTimer {
			total += e.Duration()
		}
	}
	m.todayMinutes = int(total / time.Minute)
	m.streak = m.store.Streak(streak.Week).CurrentStreak
}

func (m *Model) openInput(mode Mode) {
	m.mode = mode
	m.input.Reset()
	switch mode {
	case ModeTopic:
		m.input.Placeholder = "What are you focusing on?"
		m.input.SetValue(m.timer.Snapshot().Topic)
	case ModeCustom:
		m.input.Placeholder = "Minutes (1-120)"
	}
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.isError = false
}
