package stream

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/aiko-cli/aiko/aniskip"
	"github.com/aiko-cli/aiko/network"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeFetcher struct {
	replies map[string]error
	info    *StreamInfo
	calls   []string
}

func (f *fakeFetcher) Sources(_ context.Context, _ string, server string) (*StreamInfo, error) {
	f.calls = append(f.calls, server)
	if err := f.replies[server]; err != nil {
		return nil, err
	}
	return f.info, nil
}

type fakeSkips struct {
	times mo.Option[aniskip.SkipTimes]
}

func (f fakeSkips) SkipTimes(context.Context, int, int) (mo.Option[aniskip.SkipTimes], error) {
	return f.times, nil
}

func status(code int) error {
	return &network.StatusError{Code: code, URL: "http://api/sources"}
}

func TestResolverFetch(t *testing.T) {
	Convey("Given a resolver over a fake fetcher", t, func() {
		info := &StreamInfo{Sources: []Source{{URL: "https://cdn/master.m3u8", Type: "hls"}}}
		f := &fakeFetcher{replies: map[string]error{}, info: info}
		r := NewResolver(f, "", "")
		ctx := context.Background()

		Convey("The first server wins when it answers", func() {
			got, server, err := r.Fetch(ctx, "ep-1")
			So(err, ShouldBeNil)
			So(server, ShouldEqual, "hd-1")
			So(got, ShouldEqual, info)
			So(f.calls, ShouldResemble, []string{"hd-1"})
		})

		Convey("A 500 moves on to the next server", func() {
			f.replies["hd-1"] = status(http.StatusInternalServerError)

			_, server, err := r.Fetch(ctx, "ep-1")
			So(err, ShouldBeNil)
			So(server, ShouldEqual, "hd-2")
			So(f.calls, ShouldResemble, []string{"hd-1", "hd-2"})
		})

		Convey("Any other failure stops immediately", func() {
			f.replies["hd-1"] = status(http.StatusNotFound)

			_, _, err := r.Fetch(ctx, "ep-1")
			var statusErr *network.StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Code, ShouldEqual, http.StatusNotFound)
			So(f.calls, ShouldResemble, []string{"hd-1"})
		})

		Convey("Transport errors are not retried", func() {
			boom := errors.New("connection refused")
			f.replies["hd-1"] = boom

			_, _, err := r.Fetch(ctx, "ep-1")
			So(err, ShouldEqual, boom)
			So(f.calls, ShouldHaveLength, 1)
		})

		Convey("All servers failing with 500 exhausts the list", func() {
			f.replies["hd-1"] = status(http.StatusInternalServerError)
			f.replies["hd-2"] = status(http.StatusInternalServerError)

			_, _, err := r.Fetch(ctx, "ep-1")
			So(errors.Is(err, ErrExhausted), ShouldBeTrue)
			So(f.calls, ShouldResemble, Candidates)
		})
	})
}

func TestResolverResolve(t *testing.T) {
	Convey("Given a stream with tracks", t, func() {
		info := &StreamInfo{
			Sources: []Source{{URL: "https://cdn/master.m3u8"}},
			Tracks: []Track{
				{File: "thumbs.vtt", Kind: "thumbnails"},
				{File: "en.vtt", Label: "English", Kind: "captions"},
			},
			Intro: Range{Start: 30, End: 120},
			MalID: 52991,
		}
		f := &fakeFetcher{replies: map[string]error{}, info: info}
		ctx := context.Background()

		Convey("The URL goes through the proxy with the referrer", func() {
			r := NewResolver(f, "https://proxy.example", "https://ref.example")
			src, err := r.Resolve(ctx, "ep-1")
			So(err, ShouldBeNil)
			So(src.URL, ShouldEqual, ProxyURL("https://proxy.example", "https://cdn/master.m3u8", "https://ref.example"))
			So(src.Server, ShouldEqual, "hd-1")
			So(src.Referrer, ShouldEqual, "https://ref.example")
			So(src.Subtitle.MustGet().File, ShouldEqual, "en.vtt")
		})

		Convey("Without a proxy the URL is played directly", func() {
			src, err := NewResolver(f, "", "").Resolve(ctx, "ep-1")
			So(err, ShouldBeNil)
			So(src.URL, ShouldEqual, "https://cdn/master.m3u8")
		})

		Convey("A stream without sources is an error", func() {
			f.info = &StreamInfo{}
			_, err := NewResolver(f, "", "").Resolve(ctx, "ep-1")
			So(errors.Is(err, ErrNoSources), ShouldBeTrue)
		})

		Convey("Missing ranges are filled from the skip finder", func() {
			skips := fakeSkips{times: mo.Some(aniskip.SkipTimes{
				Opening:  aniskip.Interval{Start: 1, End: 2},
				Ending:   aniskip.Interval{Start: 1300, End: 1390},
				HasIntro: true,
				HasOutro: true,
			})}
			r := NewResolver(f, "", "", WithSkipFinder(skips))

			src, err := r.ResolveEpisode(ctx, Episode{Number: 1, ID: "ep-1"})
			So(err, ShouldBeNil)
			So(src.Intro, ShouldResemble, Range{Start: 30, End: 120})
			So(src.Outro, ShouldResemble, Range{Start: 1300, End: 1390})
		})
	})
}

func TestProxyURL(t *testing.T) {
	Convey("ProxyURL", t, func() {
		Convey("Encodes url and referrer joined by a pipe", func() {
			got := ProxyURL("https://proxy.example", "https://cdn/a.m3u8", "https://ref.example")
			want := "https://proxy.example/" +
				base64.StdEncoding.EncodeToString([]byte("https://cdn/a.m3u8|https://ref.example")) +
				".m3u8"
			So(got, ShouldEqual, want)
		})

		Convey("The token decodes back to the inputs", func() {
			got := ProxyURL("https://proxy.example", "u", "r")
			token := got[len("https://proxy.example/") : len(got)-len(".m3u8")]
			raw, err := base64.StdEncoding.DecodeString(token)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, "u|r")
		})

		Convey("The base is not normalized", func() {
			got := ProxyURL("http://p/", "u", "r")
			So(got, ShouldStartWith, "http://p//")
			So(got, ShouldEndWith, ".m3u8")
		})

		Convey("An empty base leaves the url alone", func() {
			So(ProxyURL("", "https://cdn/a.m3u8", "r"), ShouldEqual, "https://cdn/a.m3u8")
		})
	})
}

func TestSelectSubtitle(t *testing.T) {
	Convey("SelectSubtitle", t, func() {
		Convey("Picks a default captions track", func() {
			tracks := []Track{
				{File: "es.vtt", Label: "Spanish", Kind: "captions"},
				{File: "de.vtt", Label: "German", Kind: "captions", Default: true},
			}
			track, ok := SelectSubtitle(tracks)
			So(ok, ShouldBeTrue)
			So(track.File, ShouldEqual, "de.vtt")
		})

		Convey("Picks the first English captions track", func() {
			tracks := []Track{
				{File: "en-sdh.vtt", Label: "English", Kind: "subtitles"},
				{File: "en.vtt", Label: "English", Kind: "captions"},
				{File: "en2.vtt", Label: "English", Kind: "captions"},
			}
			track, ok := SelectSubtitle(tracks)
			So(ok, ShouldBeTrue)
			So(track.File, ShouldEqual, "en.vtt")
		})

		Convey("Returns none when nothing qualifies", func() {
			_, ok := SelectSubtitle([]Track{{File: "thumbs.vtt", Kind: "thumbnails", Default: true}})
			So(ok, ShouldBeFalse)

			_, ok = SelectSubtitle(nil)
			So(ok, ShouldBeFalse)
		})
	})
}
