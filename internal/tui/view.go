package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/flownote/internal/timer"
)

// View renders the focus screen
func (m Model) View() string {
	snap := m.timer.Snapshot()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("FlowNote · Focus"))
	b.WriteString("\n\n")

	topic := snap.Topic
	if topic == "" {
		topic = HelpStyle.Render("no topic")
	} else {
		topic = TopicStyle.Render(truncate(topic, 48))
	}
	b.WriteString("  " + topic + "  " + stateStyle(snap.State).Render(strings.ToUpper(snap.State.String())))
	b.WriteString("\n\n")

	b.WriteString(ClockStyle.Render(formatClock(snap.Remaining)))
	b.WriteString("\n\n  ")
	b.WriteString(m.bar.ViewAs(snap.Progress()))
	b.WriteString("\n\n  ")
	b.WriteString(m.presets(snap))
	b.WriteString("\n\n")

	b.WriteString(HelpStyle.Render(fmt.Sprintf("  Today: %d focus min · Streak: %d days", m.todayMinutes, m.streak)))
	b.WriteString("\n")

	if m.mode != ModeNormal {
		b.WriteString("\n")
		b.WriteString(ModalStyle.Render(m.input.View()))
		b.WriteString("\n")
	}

	if m.message != "" {
		style := MessageStyle
		if m.isError {
			style = ErrorStyle
		}
		b.WriteString("\n  " + style.Render(m.message) + "\n")
	}

	b.WriteString(StatusBarStyle.Render(m.help()))
	return b.String()
}

func (m Model) presets(snap timer.Snapshot) string {
	parts := make([]string, 0, len(timer.Presets)+1)
	custom := true
	for i, d := range timer.Presets {
		label := fmt.Sprintf("%d·%dm", i+1, int(d.Minutes()))
		if d == snap.Duration {
			custom = false
			parts = append(parts, PresetSelectedStyle.Render(label))
		} else {
			parts = append(parts, PresetStyle.Render(label))
		}
	}
	if custom {
		parts = append(parts, PresetSelectedStyle.Render(fmt.Sprintf("c·%dm", int(snap.Duration.Minutes()))))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) help() string {
	parts := make([]string, 0, len(keys.help()))
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
