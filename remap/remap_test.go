package remap

import (
	"testing"

	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRuleValidation(t *testing.T) {
	Convey("Given remap rules", t, func() {
		Convey("Plain identifier keys are accepted", func() {
			So(Rule{Field: "onlineRating", Action: ActionRename, To: "rating"}.Validate(), ShouldBeNil)
			So(Rule{Field: "plot", Action: ActionRemove}.Validate(), ShouldBeNil)
			So(Rule{Field: "genres", Action: ActionWikilink}.Validate(), ShouldBeNil)
		})

		Convey("Malformed keys are rejected", func() {
			So(Rule{Field: "online-rating", Action: ActionRemove}.Validate(), ShouldNotBeNil)
			So(Rule{Field: "rating!", Action: ActionRemove}.Validate(), ShouldNotBeNil)
			So(Rule{Field: "", Action: ActionRemove}.Validate(), ShouldNotBeNil)
		})

		Convey("The type discriminator is untouchable", func() {
			So(Rule{Field: "type", Action: ActionRemove}.Validate(), ShouldNotBeNil)
			So(Rule{Field: "kind", Action: ActionRename, To: "type"}.Validate(), ShouldNotBeNil)
		})

		Convey("Unknown actions are rejected", func() {
			So(Rule{Field: "plot", Action: "uppercase"}.Validate(), ShouldNotBeNil)
		})

		Convey("Rename collisions within a type are rejected", func() {
			rules := Rules{
				media.TypeMovie: {
					{Field: "plot", Action: ActionRename, To: "summary"},
					{Field: "duration", Action: ActionRename, To: "summary"},
				},
			}
			So(rules.Validate(), ShouldNotBeNil)
		})

		Convey("Renaming onto an existing field of the type is rejected", func() {
			rules := Rules{
				media.TypeMovie: {
					{Field: "plot", Action: ActionRename, To: "title"},
				},
			}
			So(rules.Validate(), ShouldNotBeNil)
		})

		Convey("Renaming onto a user-data field is rejected", func() {
			rules := Rules{
				media.TypeMovie: {
					{Field: "onlineRating", Action: ActionRename, To: "personalRating"},
				},
			}
			So(rules.Validate(), ShouldNotBeNil)
		})

		Convey("Chained renames that vacate the target first are accepted", func() {
			rules := Rules{
				media.TypeMovie: {
					{Field: "title", Action: ActionRename, To: "headline"},
					{Field: "plot", Action: ActionRename, To: "title"},
				},
			}
			So(rules.Validate(), ShouldBeNil)

			flat := map[string]any{
				"type":  "movie",
				"title": "Dune",
				"plot":  "Spice and sand.",
			}

			converted := rules.Convert(media.TypeMovie, flat)
			So(converted["headline"], ShouldEqual, "Dune")
			So(converted["title"], ShouldEqual, "Spice and sand.")

			restored := rules.ConvertBack(media.TypeMovie, converted)
			So(restored["title"], ShouldEqual, "Dune")
			So(restored["plot"], ShouldEqual, "Spice and sand.")
		})

		Convey("Unknown media types are rejected", func() {
			rules := Rules{
				"podcast": {{Field: "plot", Action: ActionRemove}},
			}
			So(rules.Validate(), ShouldNotBeNil)
		})
	})
}

func TestConvert(t *testing.T) {
	Convey("Given rules for movies", t, func() {
		rules := Rules{
			media.TypeMovie: {
				{Field: "onlineRating", Action: ActionRename, To: "rating"},
				{Field: "plot", Action: ActionRemove},
				{Field: "director", Action: ActionWikilink},
			},
		}

		flat := map[string]any{
			"type":         "movie",
			"title":        "Dune",
			"onlineRating": 8.0,
			"plot":         "Spice and sand.",
			"director":     []any{"Denis Villeneuve"},
		}

		Convey("Convert applies renames, removals and wikilinks", func() {
			converted := rules.Convert(media.TypeMovie, flat)

			So(converted["rating"], ShouldEqual, 8.0)
			So(converted, ShouldNotContainKey, "onlineRating")
			So(converted, ShouldNotContainKey, "plot")
			So(converted["director"], ShouldResemble, []any{"[[Denis Villeneuve]]"})
			So(converted["type"], ShouldEqual, "movie")
			So(converted["title"], ShouldEqual, "Dune")
		})

		Convey("The input map is left untouched", func() {
			rules.Convert(media.TypeMovie, flat)

			So(flat["onlineRating"], ShouldEqual, 8.0)
			So(flat, ShouldContainKey, "plot")
		})

		Convey("Rules for other types do not apply", func() {
			converted := rules.Convert(media.TypeSeries, flat)

			So(converted, ShouldResemble, flat)
		})

		Convey("ConvertBack restores everything except removals", func() {
			converted := rules.Convert(media.TypeMovie, flat)
			restored := rules.ConvertBack(media.TypeMovie, converted)

			So(restored["onlineRating"], ShouldEqual, 8.0)
			So(restored, ShouldNotContainKey, "rating")
			So(restored["director"], ShouldResemble, []any{"Denis Villeneuve"})
			So(restored, ShouldNotContainKey, "plot")
			So(restored["type"], ShouldEqual, "movie")
		})
	})
}

func TestPersistence(t *testing.T) {
	Convey("Given a clean filesystem", t, func() {
		filesystem.SetMemMapFs()

		Convey("Load on a missing file yields empty rules", func() {
			rules, err := Load()

			So(err, ShouldBeNil)
			So(rules, ShouldBeEmpty)
		})

		Convey("Save then Load round-trips the rules", func() {
			rules := Rules{
				media.TypeBook: {
					{Field: "author", Action: ActionWikilink},
					{Field: "isbn", Action: ActionRename, To: "isbn10"},
				},
			}

			So(Save(rules), ShouldBeNil)

			loaded, err := Load()
			So(err, ShouldBeNil)
			So(loaded, ShouldResemble, rules)
		})

		Convey("Invalid rules never reach disk", func() {
			rules := Rules{
				media.TypeBook: {{Field: "type", Action: ActionRemove}},
			}

			So(Save(rules), ShouldNotBeNil)

			loaded, err := Load()
			So(err, ShouldBeNil)
			So(loaded, ShouldBeEmpty)
		})
	})
}
