package ui

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		m := New(time.Second)

		Convey("Content is untouched without a notification", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
			So(m.Expire(now), ShouldBeFalse)
		})

		Convey("A notification is shown on the last line until it expires", func() {
			m.Notify("saved", now)
			So(m.Current(), ShouldEqual, "saved")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "saved")

			So(m.Expire(now.Add(500*time.Millisecond)), ShouldBeFalse)
			So(m.Expire(now.Add(time.Second)), ShouldBeTrue)
			So(m.Current(), ShouldBeEmpty)
		})

		Convey("A zero lifetime falls back to the default", func() {
			m := New(0)
			m.Notify("x", now)
			So(m.Expire(now.Add(DefaultLifetime-time.Millisecond)), ShouldBeFalse)
			So(m.Expire(now.Add(DefaultLifetime)), ShouldBeTrue)
		})
	})
}
