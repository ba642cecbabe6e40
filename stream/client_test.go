package stream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/internal/cache"
	"github.com/aiko-cli/aiko/network"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func newAPI(hits *int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/hianime/search", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.URL.Query().Get("q") != "frieren" || r.URL.Query().Get("page") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"animes":[
			{"id":"frieren-18542","name":"Frieren: Beyond Journey's End","episodes":{"sub":28,"dub":28}},
			{"id":"frieren-mini-19000","name":"Frieren Mini Anime","episodes":{"sub":10,"dub":0}}
		],"currentPage":1,"totalPages":1,"hasNextPage":false}}`))
	})
	mux.HandleFunc("/api/v2/hianime/anime/frieren-18542/episodes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"totalEpisodes":2,"episodes":[
			{"number":1,"title":"The Journey's End","episodeId":"frieren-18542?ep=107257","isFiller":false},
			{"number":2,"title":"It Didn't Have to Be Magic...","episodeId":"frieren-18542?ep=107403","isFiller":false}
		]}}`))
	})
	mux.HandleFunc("/api/v2/hianime/episode/sources", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("animeEpisodeId") != "frieren-18542?ep=107257" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if q.Get("server") == "hd-1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"tracks":[{"file":"https://cdn/en.vtt","label":"English","kind":"captions","isDefault":true}],
			"intro":{"start":0,"end":90},"outro":{"start":1400,"end":1490},
			"sources":[{"url":"https://cdn/master.m3u8","type":"hls"}],
			"anilistID":154587,"malID":52991}}`))
	})
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	Convey("Given a streaming API", t, func() {
		hits := 0
		srv := newAPI(&hits)
		Reset(srv.Close)
		ctx := context.Background()

		c := NewClient(srv.Client(), srv.URL+"/")

		Convey("Search decodes the page", func() {
			page, err := c.Search(ctx, "frieren", 1)
			So(err, ShouldBeNil)
			So(page.Animes, ShouldHaveLength, 2)
			So(page.Animes[0].Episodes.Sub, ShouldEqual, 28)

			best, ok := ClosestAnime("Frieren Beyond Journeys End", page.Animes)
			So(ok, ShouldBeTrue)
			So(best.ID, ShouldEqual, "frieren-18542")
		})

		Convey("Episodes decodes the list", func() {
			list, err := c.Episodes(ctx, "frieren-18542")
			So(err, ShouldBeNil)
			So(list.TotalEpisodes, ShouldEqual, 2)

			ep, ok := EpisodeByNumber(list.Episodes, 1)
			So(ok, ShouldBeTrue)
			So(ep.ID, ShouldEqual, "frieren-18542?ep=107257")
		})

		Convey("Sources reports the raw status of a server", func() {
			_, err := c.Sources(ctx, "frieren-18542?ep=107257", "hd-1")
			So(network.IsRetryable(err), ShouldBeTrue)
		})

		Convey("The resolver falls through to the working server", func() {
			src, err := NewResolver(c, "", "").Resolve(ctx, "frieren-18542?ep=107257")
			So(err, ShouldBeNil)
			So(src.Server, ShouldEqual, "hd-2")
			So(src.URL, ShouldEqual, "https://cdn/master.m3u8")
			So(src.Outro, ShouldResemble, Range{Start: 1400, End: 1490})
			So(src.MalID, ShouldEqual, 52991)
		})

		Convey("An unknown episode is not retried", func() {
			_, err := NewResolver(c, "", "").Resolve(ctx, "nope")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrExhausted), ShouldBeFalse)
		})

		Convey("A disk cache answers repeated searches", func() {
			cached := NewClient(srv.Client(), srv.URL, WithDiskCache(cache.NewDisk("/responses", time.Hour)))
			_, err := cached.Search(ctx, "frieren", 1)
			So(err, ShouldBeNil)
			_, err = cached.Search(ctx, "frieren", 1)
			So(err, ShouldBeNil)
			So(hits, ShouldEqual, 1)
		})

		Convey("A missing base URL fails fast", func() {
			_, err := NewClient(srv.Client(), "").Search(ctx, "frieren", 1)
			So(errors.Is(err, ErrNoAPI), ShouldBeTrue)
		})
	})
}
