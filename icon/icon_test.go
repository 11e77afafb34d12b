package icon

import (
	"testing"

	"github.com/mediadex-cli/mediadex/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Icon rendering", t, func() {
		Convey("Plain variant", func() {
			viper.Set(key.IconsVariant, "plain")
			So(Get(Success), ShouldEqual, "+")
			So(Get(Fail), ShouldEqual, "x")
		})

		Convey("Unknown variant falls back to plain", func() {
			viper.Set(key.IconsVariant, "nope")
			So(Get(Search), ShouldEqual, "?")
		})
	})
}

func TestAvailableVariants(t *testing.T) {
	Convey("Variants", t, func() {
		So(AvailableVariants(), ShouldContain, "emoji")
		So(len(AvailableVariants()), ShouldEqual, 5)
	})
}
