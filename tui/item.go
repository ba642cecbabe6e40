package tui

import (
	"fmt"
	"strings"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/feed"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/style"
	"github.com/charmbracelet/bubbles/list"
)

type section int

const (
	spotlightSection section = iota
	airingSection
	seasonalSection
)

func (s section) String() string {
	switch s {
	case spotlightSection:
		return "Spotlight"
	case airingSection:
		return "Airing"
	default:
		return "Seasonal"
	}
}

func (s section) icon() string {
	switch s {
	case spotlightSection:
		return icon.Get(icon.Star)
	case airingSection:
		return icon.Get(icon.Live)
	default:
		return icon.Get(icon.Play)
	}
}

// listItem is one title on the home list.
type listItem struct {
	summary anilist.Summary
	section section
}

func (t *listItem) FilterValue() string {
	return t.summary.Title
}

func (t *listItem) Title() string {
	return t.section.icon() + " " + t.summary.Title
}

func (t *listItem) Description() string {
	parts := []string{t.section.String()}

	if t.summary.Rating > 0 {
		parts = append(parts, fmt.Sprintf("%d%%", t.summary.Rating))
	}

	if t.summary.Season != "" && t.summary.SeasonYear > 0 {
		parts = append(parts, fmt.Sprintf("%s %d", t.summary.Season, t.summary.SeasonYear))
	}

	if len(t.summary.Genres) > 0 {
		genres := t.summary.Genres
		if len(genres) > 3 {
			genres = genres[:3]
		}
		parts = append(parts, strings.Join(genres, ", "))
	}

	return style.Faint(strings.Join(parts, " · "))
}

// itemsOf flattens the home lists in display order.
func itemsOf(home *feed.Home) []list.Item {
	var items []list.Item

	add := func(s section, summaries []anilist.Summary) {
		for _, summary := range summaries {
			items = append(items, &listItem{summary: summary, section: s})
		}
	}

	add(spotlightSection, home.Spotlight)
	add(airingSection, home.Airing)
	add(seasonalSection, home.Seasonal)

	return items
}
