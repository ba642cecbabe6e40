// Package tui is the interactive home screen.
package tui

import (
	"context"
	"errors"

	"github.com/aiko-cli/aiko/feed"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the home screen.
type Options struct {
	Feed *feed.Service
}

// Run shows the home screen until the user quits.
func Run(ctx context.Context, options *Options) error {
	if options == nil || options.Feed == nil {
		return errors.New("home feed is not configured")
	}

	bubble := newBubble(ctx, options)
	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
