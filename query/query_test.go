package query

import (
	"testing"

	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		Convey("When remembering queries", func() {
			So(Remember("dune", 1), ShouldBeNil)
			So(Remember("dungeons and dragons", 10), ShouldBeNil)

			Convey("Then suggestions are sorted by rank", func() {
				// Drop the in-memory layer to force a read from the file.
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("dun")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
				So(s[0], ShouldEqual, "dungeons and dragons")
			})

			Convey("Repeats bump the rank", func() {
				So(Remember("dune", 100), ShouldBeNil)
				suggestionCache = make(map[string][]*queryRecord)

				So(Suggest("dun").OrElse(""), ShouldEqual, "dune")
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  DUNE  "), ShouldEqual, "dune")
			})
		})

		Convey("When suggestions are disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("dun"), ShouldBeEmpty)
		})
	})
}
