package query

import (
	"testing"

	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given search history", t, func() {
		So(Remember("etree", 1), ShouldBeNil)
		So(Remember("ephemera", 10), ShouldBeNil)

		Convey("Suggestions are sorted by rank", func() {
			s := SuggestMany("e")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "ephemera")
		})

		Convey("Remembering again invalidates earlier lookups", func() {
			before := SuggestMany("tree")
			So(before, ShouldContain, "etree")

			So(Remember("treehouse", 1000), ShouldBeNil)
			So(Suggest("tree").MustGet(), ShouldEqual, "treehouse")
		})

		Convey("Completion only extends the typed prefix", func() {
			So(Complete("eph").MustGet(), ShouldEqual, "ephemera")
			So(Complete("ephemera").IsAbsent(), ShouldBeTrue)
			So(Complete("").IsAbsent(), ShouldBeTrue)
			So(Complete("zzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Blank queries are not remembered", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldNotContain, "")
		})

		Convey("Suggestions can be disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("e"), ShouldBeEmpty)
		})

		Convey("It trims input", func() {
			So(sanitize("  nasa  "), ShouldEqual, "nasa")
		})
	})
}
