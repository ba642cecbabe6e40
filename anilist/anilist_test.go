package anilist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aiko-cli/aiko/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/time/rate"
)

func init() {
	filesystem.SetMemMapFs()
}

type recorded struct {
	auth  string
	query string
	vars  map[string]any
}

func newServer(calls *[]recorded) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		*calls = append(*calls, recorded{auth: r.Header.Get("Authorization"), query: req.Query, vars: req.Variables})

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "Viewer"):
			_, _ = w.Write([]byte(`{"data":{"Viewer":{"id":7,"name":"Dubsky"}}}`))
		case strings.Contains(req.Query, "SaveMediaListEntry"):
			_, _ = w.Write([]byte(`{"data":{"SaveMediaListEntry":{"id":1,"progress":5,"status":"CURRENT"}}}`))
		case strings.Contains(req.Query, "MediaListCollection"):
			_, _ = w.Write([]byte(`{"data":{"MediaListCollection":{"lists":[
				{"name":"Watching","status":"CURRENT","entries":[{"id":1,"progress":3,"media":{"id":154587,"title":{"romaji":"Sousou no Frieren"}}}]}
			]}}}`))
		case strings.Contains(req.Query, "Media (id"):
			if req.Variables["id"] == float64(404) {
				_, _ = w.Write([]byte(`{"data":{"Media":null},"errors":[{"message":"Not Found.","status":404}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{"Media":{"id":154587,"title":{"english":"Frieren: Beyond Journey's End"},"averageScore":91}}}`))
		default:
			_, _ = w.Write([]byte(`{"data":{"Page":{"media":[
				{"id":1,"title":{"english":"A"},"averageScore":80},
				{"id":2,"title":{"romaji":"B"},"averageScore":90}
			]}}}`))
		}
	}))
}

func newTestClient(url string, opts ...Option) *Client {
	opts = append([]Option{
		WithEndpoint(url),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	}, opts...)
	return New(http.DefaultClient, opts...)
}

func TestClient(t *testing.T) {
	Convey("Given an AniList server", t, func() {
		var calls []recorded
		srv := newServer(&calls)
		Reset(srv.Close)
		ctx := context.Background()

		Convey("TopAiring decodes a page of media", func() {
			media, err := newTestClient(srv.URL).TopAiring(ctx, 1, 10)
			So(err, ShouldBeNil)
			So(media, ShouldHaveLength, 2)
			So(media[1].Name(), ShouldEqual, "B")
			So(calls[0].query, ShouldContainSubstring, "status: RELEASING")
			So(calls[0].auth, ShouldBeEmpty)
		})

		Convey("Seasonal passes the season and year", func() {
			_, err := newTestClient(srv.URL).Seasonal(ctx, Fall, 2024, 1, 10)
			So(err, ShouldBeNil)
			So(calls[0].vars["season"], ShouldEqual, "FALL")
			So(calls[0].vars["seasonYear"], ShouldEqual, float64(2024))
		})

		Convey("ByFilter omits unset fields", func() {
			_, err := newTestClient(srv.URL).ByFilter(ctx, Filter{Search: "frieren", Genres: []string{"Fantasy"}})
			So(err, ShouldBeNil)
			So(calls[0].vars, ShouldContainKey, "search")
			So(calls[0].vars, ShouldContainKey, "genres")
			So(calls[0].vars, ShouldNotContainKey, "season")
			So(calls[0].vars["perPage"], ShouldEqual, float64(20))
			So(calls[0].vars["page"], ShouldEqual, float64(1))
		})

		Convey("Viewer needs a token", func() {
			_, err := newTestClient(srv.URL).Viewer(ctx)
			So(errors.Is(err, ErrUnauthenticated), ShouldBeTrue)
			So(calls, ShouldBeEmpty)
		})

		Convey("The token is cut at the first ampersand", func() {
			c := newTestClient(srv.URL, WithToken(func() string { return "abc&token_type=Bearer" }))
			user, err := c.Viewer(ctx)
			So(err, ShouldBeNil)
			So(user.Name, ShouldEqual, "Dubsky")
			So(calls[0].auth, ShouldEqual, "Bearer abc")
		})

		Convey("UpdateMediaListEntry sends the mutation", func() {
			c := newTestClient(srv.URL, WithToken(func() string { return "abc" }))
			entry, err := c.UpdateMediaListEntry(ctx, 154587, 5, MediaListStatusCurrent)
			So(err, ShouldBeNil)
			So(entry.Progress, ShouldEqual, 5)
			So(calls[0].vars["status"], ShouldEqual, "CURRENT")
		})

		Convey("UserAnimeList returns every list", func() {
			lists, err := newTestClient(srv.URL).UserAnimeList(ctx, "Dubsky")
			So(err, ShouldBeNil)
			So(lists, ShouldHaveLength, 1)
			So(lists[0].Entries[0].Media.Name(), ShouldEqual, "Sousou no Frieren")
		})

		Convey("GraphQL errors are returned", func() {
			_, err := newTestClient(srv.URL).GetByID(ctx, 404)
			var gqlErrs GraphQLErrors
			So(errors.As(err, &gqlErrs), ShouldBeTrue)
			So(gqlErrs[0].Message, ShouldEqual, "Not Found.")
		})

		Convey("GetByID is served from the media cache the second time", func() {
			c := newTestClient(srv.URL, WithMediaCache("/cache/anilist_media.json"))
			first, err := c.GetByID(ctx, 154587)
			So(err, ShouldBeNil)
			second, err := c.GetByID(ctx, 154587)
			So(err, ShouldBeNil)
			So(second.Name(), ShouldEqual, first.Name())
			So(calls, ShouldHaveLength, 1)
		})
	})
}

func TestMedia(t *testing.T) {
	Convey("Given a media entry", t, func() {
		m := &Media{ID: 1, AverageScore: 88}

		Convey("Name prefers english, then romaji, then native", func() {
			So(m.Name(), ShouldEqual, "Unknown")
			m.Title.Native = "葬送のフリーレン"
			So(m.Name(), ShouldEqual, "葬送のフリーレン")
			m.Title.Romaji = "Sousou no Frieren"
			So(m.Name(), ShouldEqual, "Sousou no Frieren")
			m.Title.English = "Frieren"
			So(m.Name(), ShouldEqual, "Frieren")
		})

		Convey("Descriptions lose their markup", func() {
			m.Description = "The <i>elf</i> mage.<br><br>(Source: Crunchyroll)"
			So(m.PlainDescription(), ShouldEqual, "The elf mage.\n\n(Source: Crunchyroll)")
		})

		Convey("Summarize flattens the entry", func() {
			m.Title.Romaji = "Sousou no Frieren"
			m.CoverImage.Large = "large.jpg"
			m.Season = Fall
			s := Summarize(m)
			So(s.Title, ShouldEqual, "Sousou no Frieren")
			So(s.Rating, ShouldEqual, 88)
			So(s.ImageURL, ShouldEqual, "large.jpg")
			So(s.CoverImage, ShouldEqual, "large.jpg")
			So(s.Season, ShouldEqual, Fall)
		})
	})
}

func TestSeason(t *testing.T) {
	Convey("SeasonOf", t, func() {
		at := func(m time.Month) time.Time { return time.Date(2024, m, 10, 0, 0, 0, 0, time.UTC) }

		season, year := SeasonOf(at(time.January))
		So(season, ShouldEqual, Winter)
		So(year, ShouldEqual, 2024)

		season, year = SeasonOf(at(time.December))
		So(season, ShouldEqual, Winter)
		So(year, ShouldEqual, 2025)

		season, _ = SeasonOf(at(time.April))
		So(season, ShouldEqual, Spring)

		season, _ = SeasonOf(at(time.July))
		So(season, ShouldEqual, Summer)

		season, _ = SeasonOf(at(time.October))
		So(season, ShouldEqual, Fall)

		So(Fall.String(), ShouldEqual, "Fall")

		_, err := ParseSeason("autumn")
		So(err, ShouldNotBeNil)
	})
}

func TestMediaCache(t *testing.T) {
	Convey("Given a media cache with a controlled clock", t, func() {
		now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
		c := newMediaCacher("/cache/" + t.Name() + ".json")
		c.now = func() time.Time { return now }
		Reset(func() {
			_ = filesystem.API().Remove("/cache/" + t.Name() + ".json")
		})

		So(c.Set(1, &Media{ID: 1}), ShouldBeNil)

		Convey("A fresh entry is served", func() {
			So(c.Get(1).IsPresent(), ShouldBeTrue)
		})

		Convey("Adding other entries does not extend an old one", func() {
			now = now.Add(MediaLifetime - time.Hour)
			So(c.Set(2, &Media{ID: 2}), ShouldBeNil)

			now = now.Add(2 * time.Hour)
			So(c.Get(1).IsPresent(), ShouldBeFalse)
			So(c.Get(2).IsPresent(), ShouldBeTrue)
		})

		Convey("Expired entries are pruned on the next write", func() {
			now = now.Add(MediaLifetime)
			So(c.Set(2, &Media{ID: 2}), ShouldBeNil)

			data, _, err := c.internal.Get()
			So(err, ShouldBeNil)
			So(data.Entries, ShouldNotContainKey, 1)
			So(data.Entries, ShouldContainKey, 2)
		})
	})
}
