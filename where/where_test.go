package where

import (
	"os"
	"testing"

	"github.com/mediadex-cli/mediadex/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWhere(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Config", t, func() {
		Convey("Should honor the environment override", func() {
			So(os.Setenv(EnvConfigPath, "/tmp/mediadex-test-config"), ShouldBeNil)
			defer func() { _ = os.Unsetenv(EnvConfigPath) }()

			So(Config(), ShouldEqual, "/tmp/mediadex-test-config")
		})
	})

	Convey("Remap", t, func() {
		Convey("Should live under the config directory", func() {
			So(os.Setenv(EnvConfigPath, "/tmp/mediadex-test-config"), ShouldBeNil)
			defer func() { _ = os.Unsetenv(EnvConfigPath) }()

			So(Remap(), ShouldEqual, "/tmp/mediadex-test-config/remap.json")
		})
	})
}
