package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/feed"
	"github.com/aiko-cli/aiko/internal/cache"
	"github.com/aiko-cli/aiko/open"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	airing, seasonal []*anilist.Media
	err              error
}

func (f *fakeSource) TopAiring(context.Context, int, int) ([]*anilist.Media, error) {
	return f.airing, f.err
}

func (f *fakeSource) Seasonal(context.Context, anilist.Season, int, int, int) ([]*anilist.Media, error) {
	return f.seasonal, f.err
}

func media(id, score int, title string) *anilist.Media {
	m := &anilist.Media{ID: id, AverageScore: score}
	m.Title.English = title
	return m
}

func newTestBubble(src feed.Source) *statefulBubble {
	service := feed.New(src, cache.New[[]anilist.Summary]())
	b := newBubble(context.Background(), &Options{Feed: service})
	b.resize(100, 40)
	return b
}

func TestBubble(t *testing.T) {
	Convey("Given a home screen over a fake feed", t, func() {
		src := &fakeSource{
			airing:   []*anilist.Media{media(1, 80, "One Piece")},
			seasonal: []*anilist.Media{media(2, 90, "Frieren"), media(3, 70, "Dandadan")},
		}
		b := newTestBubble(src)

		So(b.state, ShouldEqual, loadingState)
		So(b.Init(), ShouldNotBeNil)

		msg := b.loadHome(false)()
		loaded, ok := msg.(homeLoadedMsg)
		So(ok, ShouldBeTrue)
		b.Update(loaded)

		Convey("Loading lands on the home list", func() {
			So(b.state, ShouldEqual, homeState)
			So(b.loading, ShouldBeFalse)

			// spotlight, airing, seasonal
			So(len(b.homeC.Items()), ShouldEqual, 2+1+2)

			first, ok := b.selectedSummary()
			So(ok, ShouldBeTrue)
			So(first.section, ShouldEqual, spotlightSection)
			So(first.summary.Title, ShouldEqual, "Frieren")
		})

		Convey("Enter shows the details and esc goes back", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(b.state, ShouldEqual, detailsState)
			So(b.selected, ShouldNotBeNil)
			So(b.selected.Title, ShouldEqual, "Frieren")
			So(b.View(), ShouldContainSubstring, "https://anilist.co/anime/2")

			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, homeState)
			So(b.selected, ShouldBeNil)
		})

		Convey("Refresh goes through the loading screen", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
			So(b.state, ShouldEqual, loadingState)
			So(b.loading, ShouldBeTrue)

			b.Update(b.loadHome(true)())
			So(b.state, ShouldEqual, homeState)
			So(b.notifier.Note(), ShouldEqual, "Refreshed")
		})

		Convey("A failed refresh keeps the cached lists and says so", func() {
			src.err = errors.New("offline")
			b.Update(b.loadHome(true)())
			So(b.state, ShouldEqual, homeState)
			So(b.home.Stale, ShouldBeTrue)
			So(len(b.homeC.Items()), ShouldEqual, 5)
			So(b.notifier.Note(), ShouldContainSubstring, "cached")
		})

		Convey("o opens the selected title", func() {
			var opened string
			start := open.Start
			open.Start = func(input string) error {
				opened = input
				return nil
			}
			Reset(func() { open.Start = start })

			b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
			So(opened, ShouldEqual, "https://anilist.co/anime/2")
		})

		Convey("Errors show the error screen and esc returns home", func() {
			b.Update(errors.New("boom"))
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "boom")

			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, homeState)
		})
	})

	Convey("Given a feed with nothing to show", t, func() {
		b := newTestBubble(&fakeSource{err: errors.New("offline")})

		msg := b.loadHome(false)()
		_, isErr := msg.(error)
		So(isErr, ShouldBeTrue)

		b.Update(msg)
		So(b.state, ShouldEqual, errorState)

		Convey("esc quits", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(cmd, ShouldNotBeNil)
		})
	})
}
