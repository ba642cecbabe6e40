package tui

import tea "github.com/charmbracelet/bubbletea"

// Init starts loading the home lists.
func (b *statefulBubble) Init() tea.Cmd {
	return b.startLoading(false)
}
