package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Finish key.Binding
	Topic  key.Binding
	Custom key.Binding
	Preset key.Binding
	Enter  key.Binding
	Escape key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish early")),
	Topic:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "topic")),
	Custom: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom minutes")),
	Preset: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "preset")),
	Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Finish, k.Topic, k.Preset, k.Custom, k.Quit}
}
