package filesystem

import (
	"os"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Backend switching", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")

		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		SetMemMapFs()
		path := "/data/nested/item.json"

		Convey("Missing parent directories are created", func() {
			So(WriteAtomic(path, []byte("first"), 0o644), ShouldBeNil)
			So(string(lo.Must(API().ReadFile(path))), ShouldEqual, "first")
		})

		Convey("An existing file is replaced and no temporary file is left", func() {
			So(WriteAtomic(path, []byte("first"), 0o644), ShouldBeNil)
			So(WriteAtomic(path, []byte("second"), 0o644), ShouldBeNil)

			So(string(lo.Must(API().ReadFile(path))), ShouldEqual, "second")
			_, err := API().Stat(path + ".tmp")
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("GacheFs writes through the active backend", t, func() {
		SetMemMapFs()
		var fs GacheFs

		So(fs.MkdirAll("/cache", 0o755), ShouldBeNil)
		file, err := fs.OpenFile("/cache/map.json", os.O_CREATE|os.O_WRONLY, 0o644)
		So(err, ShouldBeNil)
		_, err = file.Write([]byte("{}"))
		So(err, ShouldBeNil)
		So(file.Close(), ShouldBeNil)

		So(lo.Must(API().Exists("/cache/map.json")), ShouldBeTrue)
	})
}
