package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	b.notifier.Update(msg)

	switch msg := msg.(type) {
	case error:
		b.loading = false
		b.raiseError(msg)
		return b, cmd
	case homeLoadedMsg:
		return b, tea.Batch(cmd, b.onHomeLoaded(msg))
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		if !b.loading {
			return b, cmd
		}
		var tick tea.Cmd
		b.spinnerC, tick = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, tick)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case homeState:
		return b.updateHome(msg, cmd)
	case detailsState:
		return b.updateDetails(msg, cmd)
	case errorState:
		return b.updateError(msg, cmd)
	}

	return b, cmd
}

func (b *statefulBubble) updateHome(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.homeC.FilterState() != list.Filtering {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.selectedSummary()
			if !ok {
				return b, cmd
			}
			summary := item.summary
			b.selected = &summary
			b.newState(detailsState)
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.refresh):
			return b, tea.Batch(cmd, b.startLoading(true))
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, tea.Batch(cmd, b.openSelected())
		}
	}

	var listCmd tea.Cmd
	b.homeC, listCmd = b.homeC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateDetails(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, cmd
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.back):
		b.selected = nil
		if !b.previousState() {
			b.setState(homeState)
		}
	case bubblesKey.Matches(keyMsg, b.keymap.openURL):
		return b, tea.Batch(cmd, b.openSelected())
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	}

	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, cmd
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.refresh):
		return b, tea.Batch(cmd, b.startLoading(true))
	case bubblesKey.Matches(keyMsg, b.keymap.back):
		if b.home == nil {
			return b, tea.Quit
		}
		if !b.previousState() {
			b.setState(homeState)
		}
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	}

	return b, cmd
}
