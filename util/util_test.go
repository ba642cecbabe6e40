package util

import (
	"bytes"
	"testing"

	"github.com/aiko-cli/aiko/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "episode", "episodes"), ShouldEqual, "1 episode")
		So(Quantify(12, "episode", "episodes"), ShouldEqual, "12 episodes")
	})
}

func TestTimestamp(t *testing.T) {
	Convey("Timestamp", t, func() {
		So(Timestamp(0), ShouldEqual, "0:00")
		So(Timestamp(90), ShouldEqual, "1:30")
		So(Timestamp(3725), ShouldEqual, "1:02:05")
		So(Timestamp(-4), ShouldEqual, "0:00")
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		So(Truncate("Frieren", 10), ShouldEqual, "Frieren")
		So(Truncate("葬送のフリーレン", 4), ShouldEqual, "葬送の…")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 3), ShouldEqual, 3)
		So(Clamp(-1, 0, 3), ShouldEqual, 0)
		So(Clamp(2, 0, 3), ShouldEqual, 2)
	})
}

func TestPrintErasable(t *testing.T) {
	Convey("PrintErasable blanks what it printed", t, func() {
		var buf bytes.Buffer
		erase := PrintErasable(&buf, "loading")
		erase()
		So(buf.String(), ShouldEqual, "\rloading\r       \r")
	})
}

func TestFiles(t *testing.T) {
	Convey("Given a directory with files", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/aiko/sub", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/aiko/a.json", []byte("1234"), 0o644), ShouldBeNil)
		So(fs.WriteFile("/tmp/aiko/sub/b.json", []byte("12"), 0o644), ShouldBeNil)

		Convey("DirSize sums them", func() {
			size, err := DirSize("/tmp/aiko")
			So(err, ShouldBeNil)
			So(size, ShouldEqual, 6)
		})

		Convey("Delete removes the tree", func() {
			So(Delete("/tmp/aiko"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/aiko/a.json")
			So(exists, ShouldBeFalse)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[string]
		s.Push("home")
		s.Push("details")
		So(s.Len(), ShouldEqual, 2)

		top, ok := s.Peek()
		So(ok, ShouldBeTrue)
		So(top, ShouldEqual, "details")

		top, _ = s.Pop()
		So(top, ShouldEqual, "details")
		_, _ = s.Pop()

		_, ok = s.Pop()
		So(ok, ShouldBeFalse)
	})
}
