package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given an empty notifier", t, func() {
		m := &Model{}

		Convey("View leaves content untouched", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A note is shown on the last line until cleared", func() {
			cmd := m.Show("refreshed")
			So(cmd, ShouldNotBeNil)
			So(m.Note(), ShouldEqual, "refreshed")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "refreshed")

			m.Update(ClearMsg{})
			So(m.Note(), ShouldBeEmpty)
		})
	})
}
