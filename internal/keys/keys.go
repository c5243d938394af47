// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the style preview.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Rendering
	NextState key.Binding
	PrevState key.Binding
	Wider     key.Binding
	Narrower  key.Binding

	// General
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous style"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next style"),
		),
		NextState: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next state"),
		),
		PrevState: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous state"),
		),
		Wider: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "widen block"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "narrow block"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload schema"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextState, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextState, k.PrevState, k.Wider, k.Narrower},
		{k.Reload, k.Help, k.Quit},
	}
}
