package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/timer"
)

// Color palette
var (
	Primary   = lipgloss.Color(model.DefaultEventColor)
	Accent    = lipgloss.Color("#4ECDC4")
	Warning   = lipgloss.Color("#FFE66D")
	Danger    = lipgloss.Color("#FF6B6B")
	Success   = lipgloss.Color("#95E1A3")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			Padding(0, 1)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)

	TopicStyle = lipgloss.NewStyle().Bold(true)

	PresetStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	PresetSelectedStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ErrorStyle   = lipgloss.NewStyle().Foreground(Danger)
	MessageStyle = lipgloss.NewStyle().Foreground(Success)
	HelpStyle    = lipgloss.NewStyle().Foreground(TextMuted)
)

// stateStyle colours the state label.
func stateStyle(s timer.State) lipgloss.Style {
	switch s {
	case timer.Running:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	case timer.Paused:
		return lipgloss.NewStyle().Foreground(Warning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(TextMuted)
	}
}
