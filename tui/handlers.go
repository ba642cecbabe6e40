package tui

import (
	"fmt"

	"github.com/aiko-cli/aiko/feed"
	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/open"
	tea "github.com/charmbracelet/bubbletea"
)

var logger = log.Component("tui")

type homeLoadedMsg struct {
	home    *feed.Home
	refresh bool
}

// startLoading shows the spinner and fetches the home lists.
// force bypasses the cache freshness check.
func (b *statefulBubble) startLoading(force bool) tea.Cmd {
	b.loading = true
	b.setState(loadingState)
	return tea.Batch(b.spinnerC.Tick, b.loadHome(force))
}

func (b *statefulBubble) loadHome(force bool) tea.Cmd {
	return func() tea.Msg {
		load := b.feed.Home
		if force {
			load = b.feed.Refresh
		}

		home, err := load(b.ctx)
		if err != nil {
			logger.Errorf("home feed: %v", err)
			return err
		}
		return homeLoadedMsg{home: home, refresh: force}
	}
}

func (b *statefulBubble) onHomeLoaded(msg homeLoadedMsg) tea.Cmd {
	b.loading = false
	b.home = msg.home
	b.homeC.Title = fmt.Sprintf("Home · %s %d", msg.home.Season, msg.home.Year)
	cmd := b.homeC.SetItems(itemsOf(msg.home))

	if b.state == loadingState {
		b.setState(homeState)
	}

	switch {
	case msg.home.Stale:
		return tea.Batch(cmd, b.notifier.Show("Refresh failed, showing cached data"))
	case msg.refresh:
		return tea.Batch(cmd, b.notifier.Show("Refreshed"))
	default:
		return cmd
	}
}

func (b *statefulBubble) selectedSummary() (*listItem, bool) {
	item, ok := b.homeC.SelectedItem().(*listItem)
	return item, ok
}

func (b *statefulBubble) openSelected() tea.Cmd {
	var url string
	switch {
	case b.state == detailsState && b.selected != nil:
		url = b.selected.URL()
	default:
		item, ok := b.selectedSummary()
		if !ok {
			return nil
		}
		url = item.summary.URL()
	}

	if err := open.Start(url); err != nil {
		logger.Warnf("open %s: %v", url, err)
		return b.notifier.Show("Could not open the browser")
	}
	return nil
}
