package open

import (
	"testing"

	"github.com/archiver-cli/archiver/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Each supported platform has an opener", t, func() {
		for goos, name := range map[string]string{
			constant.Darwin:  "open",
			constant.Linux:   "xdg-open",
			constant.Android: "termux-open",
		} {
			cmd, ok := command(goos, "https://archive.org/details/nasa")
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{name, "https://archive.org/details/nasa"})
		}

		cmd, ok := command(constant.Windows, "https://archive.org")
		So(ok, ShouldBeTrue)
		So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://archive.org")
	})

	Convey("Other platforms are unsupported", t, func() {
		_, ok := command("plan9", "https://archive.org")
		So(ok, ShouldBeFalse)
	})
}
