package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassification(t *testing.T) {
	Convey("Variant classification tags", t, func() {
		Convey("Every variant reports its fixed type", func() {
			So((&Movie{}).Type(), ShouldEqual, TypeMovie)
			So((&Series{}).Type(), ShouldEqual, TypeSeries)
			So((&Season{}).Type(), ShouldEqual, TypeSeason)
			So((&Game{}).Type(), ShouldEqual, TypeGame)
			So((&Book{}).Type(), ShouldEqual, TypeBook)
			So((&ComicManga{}).Type(), ShouldEqual, TypeComicManga)
			So((&BoardGame{}).Type(), ShouldEqual, TypeBoardGame)
			So((&MusicRelease{}).Type(), ShouldEqual, TypeMusicRelease)
			So((&Wiki{}).Type(), ShouldEqual, TypeWiki)
		})

		Convey("NewStub builds the matching variant for every tag", func() {
			for _, t := range Types() {
				stub, err := NewStub(t, Meta{Title: "x"})
				So(err, ShouldBeNil)
				So(stub.Type(), ShouldEqual, t)
				So(stub.Base().Title, ShouldEqual, "x")
			}
		})

		Convey("NewStub rejects unknown tags", func() {
			_, err := NewStub(Type("podcast"), Meta{})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseType(t *testing.T) {
	Convey("ParseType", t, func() {
		got, ok := ParseType("comicManga")
		So(ok, ShouldBeTrue)
		So(got, ShouldEqual, TypeComicManga)

		_, ok = ParseType("vinyl")
		So(ok, ShouldBeFalse)
	})
}

func TestFlatten(t *testing.T) {
	Convey("Flatten", t, func() {
		m := &Movie{
			Meta: Meta{
				Title:        "Seppuku",
				EnglishTitle: "Harakiri",
				Year:         "1962",
				DataSource:   "OMDbAPI",
				ID:           "tt0056058",
			},
			Genres:   []string{"Drama"},
			UserData: MovieUserData{Watched: true, PersonalRating: 9.5},
		}

		flat, err := m.Flatten()
		So(err, ShouldBeNil)

		Convey("Carries the type tag", func() {
			So(flat["type"], ShouldEqual, "movie")
		})

		Convey("Lifts user data to the top level", func() {
			So(flat["watched"], ShouldEqual, true)
			So(flat["personalRating"], ShouldEqual, 9.5)
			_, nested := flat["userData"]
			So(nested, ShouldBeFalse)
		})

		Convey("Keeps base fields", func() {
			So(flat["title"], ShouldEqual, "Seppuku")
			So(flat["englishTitle"], ShouldEqual, "Harakiri")
			So(flat["dataSource"], ShouldEqual, "OMDbAPI")
		})
	})
}

func TestFieldKeys(t *testing.T) {
	Convey("FieldKeys", t, func() {
		Convey("Lists flattened field names for a variant", func() {
			keys, err := FieldKeys(TypeMovie)
			So(err, ShouldBeNil)

			So(keys, ShouldContain, "type")
			So(keys, ShouldContain, "title")
			So(keys, ShouldContain, "plot")
			So(keys, ShouldContain, "personalRating")
			So(keys, ShouldNotContain, "userData")
		})

		Convey("Covers every variant without gaps", func() {
			for _, t := range Types() {
				keys, err := FieldKeys(t)
				So(err, ShouldBeNil)
				So(keys, ShouldContain, "type")
				So(keys, ShouldContain, "id")
			}
		})

		Convey("Rejects unknown tags", func() {
			_, err := FieldKeys(Type("podcast"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMetaString(t *testing.T) {
	Convey("Meta String", t, func() {
		m := Meta{Title: "Dune", Year: "2021"}
		So(m.String(), ShouldEqual, "Dune (2021)")

		unknown := Meta{Title: "Untitled", Year: YearUnknown}
		So(unknown.String(), ShouldEqual, "Untitled (unknown)")
	})
}
