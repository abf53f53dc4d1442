package cache

import (
	"testing"
	"time"

	"github.com/archiver-cli/archiver/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

type document struct {
	Identifier string `json:"identifier"`
	Files      int    `json:"files"`
}

func TestStore(t *testing.T) {
	Convey("Given a store on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		store := New("/cache/details", time.Hour)

		Convey("Keys ignore case and surrounding space", func() {
			So(Key(" GD1977 "), ShouldEqual, Key("gd1977"))
			So(Key("gd1977"), ShouldNotEqual, Key("gd1978"))
		})

		Convey("Written documents are read back", func() {
			So(store.Write(Key("gd1977"), document{Identifier: "gd1977", Files: 3}), ShouldBeNil)

			var doc document
			So(store.Read(Key("gd1977"), &doc), ShouldBeTrue)
			So(doc, ShouldResemble, document{Identifier: "gd1977", Files: 3})
		})

		Convey("Missing documents are not found", func() {
			var doc document
			So(store.Read(Key("nothing"), &doc), ShouldBeFalse)
		})

		Convey("Corrupt documents are ignored", func() {
			So(filesystem.API().MkdirAll("/cache/details", 0o755), ShouldBeNil)
			So(filesystem.API().WriteFile(store.path(Key("bad")), []byte("{"), 0o644), ShouldBeNil)

			var doc document
			So(store.Read(Key("bad"), &doc), ShouldBeFalse)
		})

		Convey("Expired documents are neither read nor kept", func() {
			So(store.Write(Key("old"), document{Identifier: "old"}), ShouldBeNil)
			store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

			var doc document
			So(store.Read(Key("old"), &doc), ShouldBeFalse)
			So(store.CollectGarbage(), ShouldEqual, 1)

			exists, _ := filesystem.API().Exists(store.path(Key("old")))
			So(exists, ShouldBeFalse)
		})
	})
}
