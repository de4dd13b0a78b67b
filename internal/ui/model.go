package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/vocab/internal/coalesce"
	"github.com/five82/vocab/internal/gate"
	"github.com/five82/vocab/internal/ready"
	"github.com/five82/vocab/internal/widget"
)

const (
	sessionKey    = "session"
	noteCharLimit = 200
)

// session is the JSON blob persisted under sessionKey.
type session struct {
	Selected int `json:"selected"`
	Saved    int `json:"saved"`
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Clock     *ready.Clock
	Gate      *gate.Gate
	Latch     *ready.Latch // fired on the first WindowSizeMsg
	Coalescer *coalesce.Coalescer
	// Dispatcher delivers messages from timer goroutines into the program.
	// Defaults to ready.Goroutine.
	Dispatcher ready.Dispatcher
	Words      []Word
	ThemeName  string
	Logger     zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	clock     *ready.Clock
	gate      *gate.Gate
	latch     *ready.Latch
	coalescer *coalesce.Coalescer
	logger    zerolog.Logger
	send      func(tea.Msg)

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	sized    bool
	settled  bool
	unlocked bool

	// Data state
	words    []Word
	selected int
	notes    map[string]string
	saved    int
	status   string

	// Note input; nil while closed
	note         *widget.GuardedInput
	pendingFocus string
}

// New creates a new Bubble Tea model. send is how callbacks fired outside
// the program loop reach Update; Run wires it to Program.Send.
func New(opts Options, send func(tea.Msg)) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	words := opts.Words
	if len(words) == 0 {
		words = DefaultWords()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	if send == nil {
		send = func(tea.Msg) {}
	}

	return Model{
		ctx:       ctx,
		clock:     opts.Clock,
		gate:      opts.Gate,
		latch:     opts.Latch,
		coalescer: opts.Coalescer,
		logger:    opts.Logger,
		send:      send,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		words:     words,
		notes:     make(map[string]string),
	}
}

// listen registers the readiness and gate callbacks. It must run once,
// after send is able to deliver.
func (m Model) listen() {
	send := m.send
	m.clock.WhenReady(func() { send(readyMsg{}) })
	m.gate.Subscribe(func() { send(inputAllowedMsg{}) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadCmd(m.ctx, m.coalescer, m.words)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.sized {
			m.sized = true
			// First layout pass done; host interactions have settled.
			if m.latch != nil {
				m.latch.Fire()
			}
		}
		return m, nil

	case readyMsg:
		m.settled = true
		return m, nil

	case inputAllowedMsg:
		m.unlocked = true
		m.mountNote()
		if id := m.pendingFocus; id != "" {
			m.pendingFocus = ""
			return m, m.focusNote(id)
		}
		return m, nil

	case focusNoteMsg:
		return m, m.focusNote(msg.id)

	case loadedMsg:
		m.applyLoaded(msg)
		return m, nil

	case noteRemovedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			m.logger.Warn().Err(msg.err).Str("term", msg.term).Msg("note delete failed")
		}
		return m, nil
	}

	if m.note != nil && m.note.Focused() {
		return m, m.note.Update(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.note != nil && m.note.Focused() {
		return m.handleNoteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.selectionChanged()
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.words)-1 {
			m.selected++
			m.selectionChanged()
		}
	case key.Matches(msg, m.keys.EditNote):
		m.openNote()
	case key.Matches(msg, m.keys.Forget):
		return m, m.forgetNote()
	case key.Matches(msg, m.keys.Blur):
		m.closeNote()
	}
	return m, nil
}

// handleNoteKey processes keys while the note input has focus.
func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.saveNote()
		return m, nil
	case key.Matches(msg, m.keys.Blur):
		m.note.Blur()
		return m, nil
	}
	return m, m.note.Update(msg)
}

func (m *Model) selectedWord() (Word, bool) {
	if m.selected < 0 || m.selected >= len(m.words) {
		return Word{}, false
	}
	return m.words[m.selected], true
}

func (m *Model) selectionChanged() {
	m.closeNote()
	m.persistSession()
}

// openNote creates a note input for the selected word and asks for focus
// once the clock is ready. The input is mounted when the gate admits it.
func (m *Model) openNote() {
	word, ok := m.selectedWord()
	if !ok {
		return
	}
	m.closeNote()

	logger := m.logger
	in := widget.NewGuardedInput(widget.Options{
		AutoFocus:   true,
		Placeholder: "note for " + word.Term,
		TestID:      "note-input",
		Prompt:      "> ",
		CharLimit:   noteCharLimit,
		Width:       noteWidth(m.width),
		Logger:      logger,
		Trace: func(ev widget.TraceEvent) {
			logger.Debug().
				Str("event", ev.Event).
				Str("label", ev.Label).
				Str("instance", ev.InstanceID).
				Msg("note input")
		},
	})
	in.SetValue(m.notes[word.Term])
	m.note = in
	m.status = ""
	m.mountNote()

	id := in.ID()
	send := m.send
	m.clock.WhenReady(func() { send(focusNoteMsg{id: id}) })
}

// focusNote focuses the note input if id still names the mounted instance.
// Requests arriving before the gate opens are held until it does.
func (m *Model) focusNote(id string) tea.Cmd {
	if m.note == nil || m.note.ID() != id {
		return nil
	}
	if !m.gate.IsInputAllowed() {
		m.pendingFocus = id
		return nil
	}
	m.mountNote()
	return m.note.Focus()
}

// mountNote mounts the open note input once the gate admits it, matching
// what View renders.
func (m *Model) mountNote() {
	if m.note != nil && m.gate.IsInputAllowed() {
		m.note.Mount()
	}
}

func (m *Model) closeNote() {
	if m.note != nil {
		m.note.Unmount()
		m.note = nil
	}
	m.pendingFocus = ""
}

func (m *Model) saveNote() {
	word, ok := m.selectedWord()
	if !ok || m.note == nil {
		return
	}
	value := strings.TrimSpace(m.note.Value())
	if err := m.coalescer.SetItem(noteKey(word.Term), value); err != nil {
		m.status = "save failed: " + err.Error()
		m.logger.Warn().Err(err).Str("term", word.Term).Msg("note save failed")
		return
	}
	m.notes[word.Term] = value
	m.saved++
	m.persistSession()
	m.status = "saved note for " + word.Term
	m.closeNote()
}

func (m *Model) forgetNote() tea.Cmd {
	word, ok := m.selectedWord()
	if !ok {
		return nil
	}
	if _, had := m.notes[word.Term]; !had {
		return nil
	}
	m.closeNote()
	delete(m.notes, word.Term)
	m.status = "deleted note for " + word.Term
	return removeNoteCmd(m.ctx, m.coalescer, word.Term)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if err := m.coalescer.SetItem(themeKey, m.theme.Name); err != nil {
		m.logger.Warn().Err(err).Msg("theme save failed")
	}
}

func (m *Model) persistSession() {
	err := coalesce.SetJSON(m.coalescer, sessionKey, session{Selected: m.selected, Saved: m.saved})
	if err != nil {
		m.logger.Warn().Err(err).Msg("session save failed")
	}
}

// applyLoaded merges persisted state. Notes written since startup win over
// loaded ones.
func (m *Model) applyLoaded(msg loadedMsg) {
	if msg.err != nil {
		m.status = "load failed: " + msg.err.Error()
		m.logger.Error().Err(msg.err).Msg("load persisted state failed")
		return
	}
	for term, note := range msg.notes {
		if _, ok := m.notes[term]; !ok {
			m.notes[term] = note
		}
	}
	if msg.theme != "" {
		m.theme = GetTheme(msg.theme)
	}
	if msg.session.Selected >= 0 && msg.session.Selected < len(m.words) {
		m.selected = msg.session.Selected
	}
	if msg.session.Saved > m.saved {
		m.saved = msg.session.Saved
	}
}

func noteWidth(screen int) int {
	w := screen - 8
	if w < 20 {
		return 40
	}
	return w
}

// Messages

type readyMsg struct{}

type inputAllowedMsg struct{}

type focusNoteMsg struct{ id string }

type loadedMsg struct {
	notes   map[string]string
	theme   string
	session session
	err     error
}

type noteRemovedMsg struct {
	term string
	err  error
}

// Commands

func loadCmd(ctx context.Context, c *coalesce.Coalescer, words []Word) tea.Cmd {
	return func() tea.Msg {
		msg := loadedMsg{notes: make(map[string]string)}
		for _, w := range words {
			note, ok, err := c.GetItem(ctx, noteKey(w.Term))
			if err != nil {
				msg.err = err
				return msg
			}
			if ok {
				msg.notes[w.Term] = note
			}
		}
		theme, _, err := c.GetItem(ctx, themeKey)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.theme = theme
		if _, err := coalesce.GetJSON(ctx, c, sessionKey, &msg.session); err != nil {
			msg.err = err
		}
		return msg
	}
}

func removeNoteCmd(ctx context.Context, c *coalesce.Coalescer, term string) tea.Cmd {
	return func() tea.Msg {
		return noteRemovedMsg{term: term, err: c.RemoveItem(ctx, noteKey(term))}
	}
}
