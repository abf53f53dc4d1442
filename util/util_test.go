package util

import (
	"testing"

	"github.com/archiver-cli/archiver/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("gd1977-05-08:sbd?"), ShouldEqual, "gd1977-05-08_sbd")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("some  item"), ShouldEqual, "some_item")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("../item."), ShouldEqual, "item")
		})
		Convey("Should keep plain identifiers", func() {
			So(SanitizeFilename("nasa_images-1"), ShouldEqual, "nasa_images-1")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(0, "file", "files"), ShouldEqual, "0 files")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize("élan"), ShouldEqual, "Élan")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given files on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/cache/a", 0o755), ShouldBeNil)
		So(fs.WriteFile("/cache/a/b.json", []byte("{}"), 0o644), ShouldBeNil)
		So(fs.WriteFile("/cache/c.json", []byte("{}"), 0o644), ShouldBeNil)

		Convey("Delete removes single files", func() {
			So(Delete("/cache/c.json"), ShouldBeNil)
			exists, _ := fs.Exists("/cache/c.json")
			So(exists, ShouldBeFalse)
		})

		Convey("Delete removes directories recursively", func() {
			So(Delete("/cache/a"), ShouldBeNil)
			exists, _ := fs.Exists("/cache/a/b.json")
			So(exists, ShouldBeFalse)
		})

		Convey("Delete reports missing paths", func() {
			So(Delete("/nowhere"), ShouldNotBeNil)
		})
	})
}
