package aniskip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func newServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/1535/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"found":true,"results":[
			{"interval":{"start_time":10.5,"end_time":100.5},"skip_type":"op"},
			{"interval":{"start_time":1300,"end_time":1390},"skip_type":"ed"}
		]}`))
	})
	mux.HandleFunc("/1535/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"found":false,"results":[]}`))
	})
	mux.HandleFunc("/1535/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestSkipTimes(t *testing.T) {
	Convey("Given an AniSkip server", t, func() {
		srv := newServer()
		Reset(srv.Close)

		c := New(srv.Client(), srv.URL)
		ctx := context.Background()

		Convey("Known episodes return both ranges", func() {
			times, err := c.SkipTimes(ctx, 1535, 1)
			So(err, ShouldBeNil)
			So(times.IsPresent(), ShouldBeTrue)

			st := times.MustGet()
			So(st.HasIntro, ShouldBeTrue)
			So(st.HasOutro, ShouldBeTrue)
			So(st.Opening, ShouldResemble, Interval{Start: 10.5, End: 100.5})
			So(st.Ending.End, ShouldEqual, 1390)
		})

		Convey("Unregistered episodes return none", func() {
			times, err := c.SkipTimes(ctx, 1535, 2)
			So(err, ShouldBeNil)
			So(times.IsAbsent(), ShouldBeTrue)
		})

		Convey("Upstream errors degrade to none", func() {
			times, err := c.SkipTimes(ctx, 1535, 3)
			So(err, ShouldBeNil)
			So(times.IsAbsent(), ShouldBeTrue)
		})

		Convey("Invalid ids are not looked up", func() {
			times, err := c.SkipTimes(ctx, 0, 1)
			So(err, ShouldBeNil)
			So(times.IsAbsent(), ShouldBeTrue)
		})
	})
}
