// Package ui renders short-lived status notes under a bubbletea view.
package ui

import (
	"strings"
	"time"

	"github.com/aiko-cli/aiko/style"
	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a note stays on screen.
const Lifetime = 3 * time.Second

// Model holds the note currently shown.
type Model struct {
	note string
}

// ClearMsg removes the current note.
type ClearMsg struct{}

// Show displays text and returns the command that later clears it.
func (m *Model) Show(text string) tea.Cmd {
	m.note = text
	return clearAfter(Lifetime)
}

func clearAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearMsg{}
	})
}

// Update handles ClearMsg.
func (m *Model) Update(msg tea.Msg) {
	if _, ok := msg.(ClearMsg); ok {
		m.note = ""
	}
}

// Note is the text currently shown.
func (m *Model) Note() string {
	return m.note
}

// View appends the note to the last line of content.
func (m *Model) View(content string) string {
	if m.note == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.note)
	return strings.Join(lines, "\n")
}
