package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vocab/internal/widget"
)

const noteHint = "Notes unlock after your first keypress and a short pause."

// View implements tea.Model.
func (m Model) View() string {
	if !m.sized {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderWords())
	b.WriteString("\n")

	if m.note != nil {
		if word, ok := m.selectedWord(); ok {
			panel := widget.Mount[Word](m.gate, m.renderNoteInput, m.renderNoteHint)
			b.WriteString(panel(word))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString(m.theme.Styles().MutedText.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderHeader renders the logo and status chips.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	readiness := styles.WarningText.Render("settling")
	if m.settled {
		readiness = styles.SuccessText.Render("ready")
	}
	input := styles.WarningText.Render("input locked")
	if m.unlocked || m.gate.IsInputAllowed() {
		input = styles.SuccessText.Render("input open")
	}
	pending := styles.MutedText.Render(fmt.Sprintf("%d pending", m.coalescer.Pending()))

	parts := []string{
		styles.Logo.Render("vocab"),
		readiness,
		input,
		pending,
		styles.FaintText.Render(m.theme.Name),
	}
	return styles.Header.Render(strings.Join(parts, "  "))
}

// renderWords renders the vocabulary list with note previews.
func (m Model) renderWords() string {
	styles := m.theme.Styles()

	termWidth := 0
	for _, w := range m.words {
		termWidth = max(termWidth, lipgloss.Width(w.Term))
	}

	lines := make([]string, 0, len(m.words))
	for i, w := range m.words {
		term := w.Term + strings.Repeat(" ", termWidth-lipgloss.Width(w.Term))
		line := fmt.Sprintf(" %s  %s", term, w.Meaning)
		if note := m.notes[w.Term]; note != "" {
			line += "  " + styles.MutedText.Render(truncate(note, 40))
		}
		if i == m.selected {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderNoteInput(w Word) string {
	styles := m.theme.Styles()
	panel := styles.Panel
	if m.note.Focused() {
		panel = styles.FocusPanel
	}
	title := styles.AccentText.Render("Note for " + w.Term)
	return panel.Render(title + "\n" + m.note.View())
}

func (m Model) renderNoteHint(Word) string {
	styles := m.theme.Styles()
	return styles.Panel.Render(styles.FaintText.Render(noteHint))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
