package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/timer"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-8, 60)
		return m, nil

	case tickMsg:
		e, err := m.timer.Tick(m.ctx)
		if err != nil {
			logger.Error("Failed to record focus session", logger.F("error", err))
			m.setError(err)
		}
		if e != nil {
			m.recorded(e, "Session complete")
		}
		return m, tick()

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		if m.mode != ModeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Toggle):
		switch m.timer.Snapshot().State {
		case timer.Running:
			m.timer.Pause()
			m.setMessage("Paused")
		case timer.Paused:
			m.timer.Resume()
			m.setMessage("")
		default:
			if err := m.timer.Start(m.ctx); err != nil {
				m.setError(err)
				m.openInput(ModeTopic)
				return m, nil
			}
			m.setMessage("")
		}

	case key.Matches(msg, keys.Reset):
		m.timer.Reset()
		m.setMessage("Reset")

	case key.Matches(msg, keys.Finish):
		e, err := m.timer.FinishEarly(m.ctx)
		if err != nil {
			m.setError(err)
		} else if e != nil {
			m.recorded(e, "Finished early")
		}

	case key.Matches(msg, keys.Topic):
		if m.timer.Snapshot().State == timer.Running {
			m.setError(model.ErrTimerRunning)
			return m, nil
		}
		m.openInput(ModeTopic)

	case key.Matches(msg, keys.Custom):
		if m.timer.Snapshot().State == timer.Running {
			m.setError(model.ErrTimerRunning)
			return m, nil
		}
		m.openInput(ModeCustom)

	case key.Matches(msg, keys.Preset):
		i, _ := strconv.Atoi(msg.String())
		m.setDuration(timer.Presets[i-1])
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.closeInput()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		switch mode {
		case ModeTopic:
			if err := m.timer.SetTopic(value); err != nil {
				m.setError(err)
			} else if value == "" {
				m.setError(fmt.Errorf("%w: enter a focus topic first", model.ErrInvalid))
			} else {
				m.setMessage("Topic: " + value)
			}
		case ModeCustom:
			minutes, err := strconv.Atoi(value)
			if err != nil {
				m.setError(fmt.Errorf("%w: %q is not a number", model.ErrInvalid, value))
				return m, nil
			}
			m.setDuration(time.Duration(minutes) * time.Minute)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setDuration(d time.Duration) {
	if err := m.timer.SetDuration(d); err != nil {
		m.setError(err)
		return
	}
	m.setMessage(fmt.Sprintf("Duration: %d min", int(d/time.Minute)))
}

func (m *Model) recorded(e *model.CalendarEvent, prefix string) {
	m.refreshStats()
	m.setMessage(fmt.Sprintf("%s: %q added to calendar (%s – %s)",
		prefix, e.Title, e.Start().Format("15:04"), e.End().Format("15:04")))
}
