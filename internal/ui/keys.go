package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the practice screen.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Word list
	Up       key.Binding
	Down     key.Binding
	EditNote key.Binding
	Forget   key.Binding

	// Note input
	Save key.Binding
	Blur key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Previous word"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Next word"),
		),
		EditNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Write note"),
		),
		Forget: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete note"),
		),

		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Save note"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditNote, k.Save, k.Blur, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.EditNote, k.Forget},
		{k.Save, k.Blur},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
