package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/archiver-cli/archiver/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			custom := filepath.Join(os.TempDir(), "archiver-where-test")
			t.Setenv(EnvConfigPath, custom)
			So(Config(), ShouldEqual, custom)
			So(Settings(), ShouldEqual, filepath.Join(custom, "settings.toml"))
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			So(Queries(), ShouldStartWith, path)
			So(History(), ShouldStartWith, path)
			So(Queries(), ShouldNotEqual, History())
		})

		Convey("Details() is a directory inside the cache", func() {
			path := Details()
			So(filepath.Dir(path), ShouldEqual, Cache())
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}
