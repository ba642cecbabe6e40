package tui

import (
	"fmt"
	"strings"

	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case homeState:
		output = b.viewHome()
	case detailsState:
		output = b.viewDetails()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " Fetching the home feed",
		},
	)
}

func (b *statefulBubble) viewHome() string {
	return listExtraPaddingStyle.Render(b.homeC.View())
}

func (b *statefulBubble) viewDetails() string {
	s := b.selected
	if s == nil {
		return b.renderLines(true, []string{style.Title("Details")})
	}

	facts := []string{}
	if s.Rating > 0 {
		facts = append(facts, fmt.Sprintf("%s %d%%", icon.Get(icon.Star), s.Rating))
	}
	if s.Episodes > 0 {
		facts = append(facts, fmt.Sprintf("%d episodes", s.Episodes))
	}
	if s.Season != "" && s.SeasonYear > 0 {
		facts = append(facts, fmt.Sprintf("%s %d", s.Season, s.SeasonYear))
	}

	lines := []string{
		style.Title(s.Title),
		"",
		strings.Join(facts, " · "),
	}

	if len(s.Genres) > 0 {
		lines = append(lines, style.Faint(strings.Join(s.Genres, ", ")))
	}

	lines = append(lines, "", style.Accented(s.URL()), "")

	if s.Description != "" {
		width := b.textWidth()
		lines = append(lines, strings.Split(wrap.String(wordwrap.String(s.Description, width), width), "\n")...)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.Fg(style.ErrorColor)(b.lastError.Error()), b.textWidth())
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Could not load the home feed:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) textWidth() int {
	if b.width <= 0 {
		return 80
	}
	return b.width
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
