package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared by the prompt programs.
type KeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// InputHelpText returns help text for the name prompt.
func (k KeyMap) InputHelpText() string {
	return "enter create • esc cancel"
}
