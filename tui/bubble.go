package tui

import (
	"context"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/feed"
	"github.com/aiko-cli/aiko/internal/ui"
	"github.com/aiko-cli/aiko/style"
	"github.com/aiko-cli/aiko/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// statefulBubble is the home screen model.
type statefulBubble struct {
	ctx context.Context

	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	homeC    list.Model
	helpC    help.Model

	feed     *feed.Service
	home     *feed.Home
	selected *anilist.Summary

	lastError error

	width, height int
	notifier      *ui.Model
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s and remembers where it came from.
// Loading and error screens are never returned to.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState && b.state != errorState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState returns to the last remembered state. ok is false when there is none.
func (b *statefulBubble) previousState() (ok bool) {
	s, ok := b.statesHistory.Pop()
	if ok {
		b.setState(s)
	}
	return ok
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.homeC.SetSize(listWidth, listHeight)
	b.homeC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := &statefulBubble{
		ctx:      ctx,
		keymap:   keymap,
		feed:     options.Feed,
		notifier: &ui.Model{},
	}

	accent := style.CurrentAccent()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(accent.Primary).
		Foreground(accent.Primary).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.homeC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.homeC.KeyMap = keymap.forList()
	bubble.homeC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.homeC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.homeC.Title = "Home"
	bubble.homeC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(accent.Primary).Padding(0, 1)
	bubble.homeC.Styles.NoItems = paddingStyle
	bubble.homeC.SetStatusBarItemName("title", "titles")

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(accent.Secondary)

	bubble.setState(loadingState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return bubble
}
