package history

import (
	"testing"
	"time"

	"github.com/aiko-cli/aiko/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		path := "/history/" + t.Name() + ".json"
		h := New(path)
		Reset(func() {
			_ = filesystem.API().Remove(path)
		})
		clock := time.Date(2024, 4, 1, 20, 0, 0, 0, time.UTC)
		h.now = func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}

		Convey("Last is empty", func() {
			last, err := h.Last()
			So(err, ShouldBeNil)
			So(last.IsAbsent(), ShouldBeTrue)
		})

		Convey("Entries without an anime id are rejected", func() {
			So(h.Save(Entry{Episode: 1}), ShouldNotBeNil)
		})

		Convey("When two anime are saved", func() {
			So(h.Save(Entry{AnimeID: "frieren-18542", AnimeName: "Frieren", Episode: 3, TotalEpisodes: 28}), ShouldBeNil)
			So(h.Save(Entry{AnimeID: "one-piece-100", AnimeName: "One Piece", Episode: 1000}), ShouldBeNil)

			Convey("The latest comes first", func() {
				entries, err := h.All()
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].AnimeName, ShouldEqual, "One Piece")

				last, err := h.Last()
				So(err, ShouldBeNil)
				So(last.MustGet().AnimeID, ShouldEqual, "one-piece-100")
			})

			Convey("Saving an anime again replaces its entry", func() {
				So(h.Save(Entry{AnimeID: "frieren-18542", AnimeName: "Frieren", Episode: 4, TotalEpisodes: 28}), ShouldBeNil)

				entries, err := h.All()
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Episode, ShouldEqual, 4)
				So(entries[0].String(), ShouldEqual, "Frieren : 4 / 28")
			})

			Convey("Remove forgets an anime", func() {
				So(h.Remove("one-piece-100"), ShouldBeNil)
				entries, err := h.All()
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
			})
		})
	})

	Convey("Finished", t, func() {
		So((&Entry{Episode: 28, TotalEpisodes: 28}).Finished(), ShouldBeTrue)
		So((&Entry{Episode: 3, TotalEpisodes: 28}).Finished(), ShouldBeFalse)
		So((&Entry{Episode: 3}).Finished(), ShouldBeFalse)
	})
}
