package player

import (
	"testing"

	"github.com/aiko-cli/aiko/stream"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestArgs(t *testing.T) {
	Convey("Given playback options", t, func() {
		opts := Options{
			URL:      "https://proxy.example/proxy/abc.m3u8",
			Title:    "Frieren\nEpisode 1",
			Referrer: "https://megacloud.example",
			Subtitle: "https://cdn.example/en.vtt",
			Start:    90,
		}

		Convey("Args carries every option and ends with the target", func() {
			args, err := Args(opts)
			So(err, ShouldBeNil)
			So(args, ShouldContain, "--force-media-title=Frieren Episode 1")
			So(args, ShouldContain, "--http-header-fields=Referer: https://megacloud.example")
			So(args, ShouldContain, "--sub-file=https://cdn.example/en.vtt")
			So(args, ShouldContain, "--start=90")
			So(args[len(args)-1], ShouldEqual, opts.URL)
		})

		Convey("Empty optional fields add nothing", func() {
			args, err := Args(Options{URL: opts.URL})
			So(err, ShouldBeNil)
			So(args, ShouldResemble, []string{"--force-window=yes", opts.URL})
		})

		Convey("Targets that look like flags are rejected", func() {
			_, err := Args(Options{URL: "--script=evil.lua"})
			So(err, ShouldNotBeNil)
		})

		Convey("Unsupported schemes are rejected", func() {
			_, err := Args(Options{URL: "file:///etc/passwd"})
			So(err, ShouldNotBeNil)

			opts.Subtitle = "ftp://cdn.example/en.vtt"
			_, err = Args(opts)
			So(err, ShouldNotBeNil)
		})

		Convey("Commas in the referrer are escaped", func() {
			opts.Referrer = "https://a.example/?x=1,2"
			args, err := Args(opts)
			So(err, ShouldBeNil)
			So(args, ShouldContain, "--http-header-fields=Referer: https://a.example/?x=1%2C2")
		})
	})
}

func TestChapters(t *testing.T) {
	Convey("SkipChapters", t, func() {
		Convey("Unknown ranges produce no markers", func() {
			So(SkipChapters(stream.Range{}, stream.Range{}), ShouldBeEmpty)
		})

		Convey("Known ranges frame the opening and ending", func() {
			chapters := SkipChapters(stream.Range{Start: 30, End: 120}, stream.Range{Start: 1300, End: 1390})
			So(chapters, ShouldResemble, []Chapter{
				{Title: "Part A", Start: 0},
				{Title: "Opening", Start: 30},
				{Title: "Part B", Start: 120},
				{Title: "Ending", Start: 1300},
				{Title: "Preview", Start: 1390},
			})
		})
	})

	Convey("FormatChapters renders OGM lines", t, func() {
		out := FormatChapters([]Chapter{{Title: "Opening", Start: 3725}})
		So(out, ShouldEqual, "CHAPTER01=01:02:05.000\nCHAPTER01NAME=Opening\n")
	})

	Convey("WriteChapters stores a file under the directory", t, func() {
		fs := afero.NewMemMapFs()
		path, err := WriteChapters(fs, "/tmp/aiko", []Chapter{{Title: "Part A"}})
		So(err, ShouldBeNil)

		data, err := afero.ReadFile(fs, path)
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "CHAPTER01NAME=Part A")
	})
}
