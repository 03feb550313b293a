package browser

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the side panel keybindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Refresh  key.Binding
	New      key.Binding
	Rename   key.Binding
	Move     key.Binding
	Delete   key.Binding
	Open     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Toggle:  key.NewBinding(key.WithKeys("tab", " "), key.WithHelp("tab", "fold")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Rename:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename")),
		Move:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move scope")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "cancel")),
	}
}
