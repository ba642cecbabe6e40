package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/internal/cache"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	airing   []*anilist.Media
	seasonal []*anilist.Media
	err      error
	calls    int
	season   anilist.Season
	year     int
}

func (f *fakeSource) TopAiring(context.Context, int, int) ([]*anilist.Media, error) {
	f.calls++
	return f.airing, f.err
}

func (f *fakeSource) Seasonal(_ context.Context, season anilist.Season, year, _, _ int) ([]*anilist.Media, error) {
	f.season, f.year = season, year
	return f.seasonal, f.err
}

func media(id, score int) *anilist.Media {
	m := &anilist.Media{ID: id, AverageScore: score}
	m.Title.Romaji = "title"
	return m
}

func TestService(t *testing.T) {
	Convey("Given a feed over a fake source", t, func() {
		now := time.Date(2024, time.October, 5, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }

		seasonal := []*anilist.Media{}
		for i := 1; i <= 12; i++ {
			seasonal = append(seasonal, media(i, 60+i%5))
		}
		seasonal[4].AverageScore = 95

		src := &fakeSource{airing: []*anilist.Media{media(100, 80), media(101, 70)}, seasonal: seasonal}
		c := cache.New[[]anilist.Summary](cache.WithClock[[]anilist.Summary](clock))
		s := New(src, c, WithClock(clock))
		ctx := context.Background()

		Convey("The first load fetches the current season", func() {
			home, err := s.Home(ctx)
			So(err, ShouldBeNil)
			So(src.season, ShouldEqual, anilist.Fall)
			So(src.year, ShouldEqual, 2024)
			So(home.Stale, ShouldBeFalse)
			So(home.Age, ShouldEqual, 0)
			So(home.Airing, ShouldHaveLength, 2)
			So(home.Seasonal, ShouldHaveLength, ListSize)
			So(c.NeedsRefresh(), ShouldBeFalse)

			Convey("The spotlight holds the three best rated titles", func() {
				So(home.Spotlight, ShouldHaveLength, SpotlightSize)
				So(home.Spotlight[0].ID, ShouldEqual, 5)
				So(home.Spotlight[0].Rating, ShouldEqual, 95)
				So(home.Spotlight[1].Rating, ShouldBeGreaterThanOrEqualTo, home.Spotlight[2].Rating)
			})

			Convey("A second load inside the TTL uses the cache", func() {
				_, err := s.Home(ctx)
				So(err, ShouldBeNil)
				So(src.calls, ShouldEqual, 1)
			})

			Convey("Refresh fetches regardless", func() {
				_, err := s.Refresh(ctx)
				So(err, ShouldBeNil)
				So(src.calls, ShouldEqual, 2)
			})

			Convey("A failed refresh after the TTL keeps the stale lists", func() {
				now = now.Add(cache.TTL + time.Minute)
				src.err = errors.New("timeout")

				home, err := s.Home(ctx)
				So(err, ShouldBeNil)
				So(home.Stale, ShouldBeTrue)
				So(home.Age, ShouldEqual, cache.TTL+time.Minute)
				So(home.Airing, ShouldHaveLength, 2)
				So(c.NeedsRefresh(), ShouldBeTrue)
			})
		})

		Convey("A failed first load has nothing to show", func() {
			src.err = errors.New("offline")
			_, err := s.Home(ctx)
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
		})
	})
}

func TestSpotlight(t *testing.T) {
	Convey("Spotlight keeps list order among equal ratings", t, func() {
		list := []anilist.Summary{{ID: 1, Rating: 80}, {ID: 2, Rating: 90}, {ID: 3, Rating: 80}, {ID: 4, Rating: 80}}
		got := Spotlight(list)
		So(got, ShouldHaveLength, 3)
		So(got[0].ID, ShouldEqual, 2)
		So(got[1].ID, ShouldEqual, 1)
		So(got[2].ID, ShouldEqual, 3)
		So(list[0].ID, ShouldEqual, 1)

		So(Spotlight(nil), ShouldBeEmpty)
	})
}
