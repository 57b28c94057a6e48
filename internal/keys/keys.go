// Package keys contains the application-level keybinding definitions.
// Component-local bindings (editor movement, style chords) live with their
// components.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application shell.
type KeyMap struct {
	// Library actions (active while the document list is focused)
	Open   key.Binding
	New    key.Binding
	Rename key.Binding
	Delete key.Binding

	// Global actions
	Save          key.Binding
	Refresh       key.Binding
	TogglePreview key.Binding
	FocusNext     key.Binding
	Escape        key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default application keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open document"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new document"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename document"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete document"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh library"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "toggle preview"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to library"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.New, k.Save, k.FocusNext, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.New, k.Rename, k.Delete},
		{k.Save, k.Refresh, k.TogglePreview},
		{k.FocusNext, k.Escape, k.Quit},
	}
}
