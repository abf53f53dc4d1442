package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/key"
	"github.com/archiver-cli/archiver/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Structured entries are still safe to use", func() {
			So(func() { WithFields(Fields{"collection": "nasa"}).Info("discarded") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "not-a-level")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("A dated log file is created", func() {
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			exists, err := filesystem.API().Exists(path)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
