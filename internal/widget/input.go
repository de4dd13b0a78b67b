package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Trace events emitted by GuardedInput.
const (
	EventMount   = "mount"
	EventUnmount = "unmount"
)

// TraceEvent is a diagnostic record of an input lifecycle transition.
type TraceEvent struct {
	Event      string
	Label      string
	InstanceID string
}

// TraceFunc receives lifecycle trace events. Panics are recovered.
type TraceFunc func(TraceEvent)

// Options configure a GuardedInput.
type Options struct {
	// AutoFocus is accepted for call-site compatibility and always ignored.
	AutoFocus bool

	Placeholder        string
	TestID             string
	AccessibilityLabel string
	Prompt             string
	CharLimit          int
	Width              int

	Logger zerolog.Logger
	Trace  TraceFunc
}

// GuardedInput wraps a text input that is never focused automatically.
// Only an explicit Focus call focuses it, regardless of options.
type GuardedInput struct {
	input   textinput.Model
	id      string
	label   string
	logger  zerolog.Logger
	trace   TraceFunc
	mounted bool
}

// NewGuardedInput builds a blurred input.
func NewGuardedInput(opts Options) *GuardedInput {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	if opts.Prompt != "" {
		ti.Prompt = opts.Prompt
	}
	ti.CharLimit = opts.CharLimit
	ti.Width = opts.Width
	// A blinking cursor needs its blink command to be scheduled; static
	// keeps rendering correct for focus requests that arrive as callbacks.
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Blur()

	in := &GuardedInput{
		input:  ti,
		id:     uuid.NewString(),
		logger: opts.Logger,
		trace:  opts.Trace,
	}
	in.label = traceLabel(opts)
	if opts.AutoFocus {
		in.logger.Debug().Str("input", in.label).Msg("autofocus request ignored")
	}
	return in
}

func traceLabel(opts Options) string {
	for _, candidate := range []string{opts.Placeholder, opts.TestID, opts.AccessibilityLabel} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return "unknown"
}

// ID returns the per-instance identifier used in traces.
func (in *GuardedInput) ID() string { return in.id }

// Label returns the identifying label used in traces.
func (in *GuardedInput) Label() string { return in.label }

// Mount records that the input is on screen. It never focuses.
func (in *GuardedInput) Mount() {
	if in.mounted {
		return
	}
	in.mounted = true
	in.emit(EventMount)
}

// Unmount records that the input left the screen and blurs it.
func (in *GuardedInput) Unmount() {
	if !in.mounted {
		return
	}
	in.mounted = false
	in.input.Blur()
	in.emit(EventUnmount)
}

// Mounted reports whether Mount has been called without a matching Unmount.
func (in *GuardedInput) Mounted() bool { return in.mounted }

func (in *GuardedInput) emit(event string) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.Warn().Str("panic", fmt.Sprint(r)).Msg("input trace failed")
		}
	}()
	ev := TraceEvent{Event: event, Label: in.label, InstanceID: in.id}
	if in.trace != nil {
		in.trace(ev)
		return
	}
	in.logger.Debug().Str("event", ev.Event).Str("input", ev.Label).Str("id", ev.InstanceID).Msg("input lifecycle")
}

// Focus focuses the input.
func (in *GuardedInput) Focus() tea.Cmd {
	return in.input.Focus()
}

// Blur removes focus.
func (in *GuardedInput) Blur() {
	in.input.Blur()
}

// Focused reports whether the input has focus.
func (in *GuardedInput) Focused() bool {
	return in.input.Focused()
}

// Clear empties the input's text.
func (in *GuardedInput) Clear() {
	in.input.Reset()
}

// Value returns the current text.
func (in *GuardedInput) Value() string {
	return in.input.Value()
}

// SetValue replaces the current text.
func (in *GuardedInput) SetValue(s string) {
	in.input.SetValue(s)
}

// SetNativeProps lets callers adjust display properties of the underlying
// input. Focus cannot be acquired this way: if apply focuses a blurred
// input, the focus is dropped again.
func (in *GuardedInput) SetNativeProps(apply func(*textinput.Model)) {
	if apply == nil {
		return
	}
	wasFocused := in.input.Focused()
	apply(&in.input)
	if !wasFocused && in.input.Focused() {
		in.input.Blur()
	}
}

// Update forwards msg to the input while it is focused.
func (in *GuardedInput) Update(msg tea.Msg) tea.Cmd {
	if !in.input.Focused() {
		return nil
	}
	var cmd tea.Cmd
	in.input, cmd = in.input.Update(msg)
	return cmd
}

// View renders the input.
func (in *GuardedInput) View() string {
	return in.input.View()
}
