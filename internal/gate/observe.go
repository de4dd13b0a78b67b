package gate

import (
	tea "github.com/charmbracelet/bubbletea"
)

// IsUserEvent reports whether msg is a key press or a mouse action that
// counts as the user touching the interface. Bare pointer motion does not.
func IsUserEvent(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return true
	case tea.MouseMsg:
		return msg.Action != tea.MouseActionMotion
	default:
		return false
	}
}

// observer wraps a model and opens the gate on the first user event. It
// never consumes messages: every message reaches the inner model unchanged.
type observer struct {
	inner tea.Model
	gate  *Gate
}

// Observe wraps inner so that user events anywhere in the program call
// AllowInteraction on g before being forwarded.
func Observe(inner tea.Model, g *Gate) tea.Model {
	return observer{inner: inner, gate: g}
}

// Init implements tea.Model.
func (o observer) Init() tea.Cmd {
	return o.inner.Init()
}

// Update implements tea.Model.
func (o observer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if IsUserEvent(msg) {
		o.gate.AllowInteraction()
	}
	next, cmd := o.inner.Update(msg)
	o.inner = next
	return o, cmd
}

// View implements tea.Model.
func (o observer) View() string {
	return o.inner.View()
}
