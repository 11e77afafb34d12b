package notes

import (
	"strings"
	"testing"

	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/remap"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func testMovie() *media.Movie {
	return &media.Movie{
		Meta: media.Meta{
			Title:        "Dune",
			EnglishTitle: "Dune",
			Year:         "2021",
			DataSource:   "OMDbAPI",
			URL:          "https://www.imdb.com/title/tt1160419",
			ID:           "tt1160419",
		},
		Plot:         "Spice and sand.",
		Genres:       []string{"Action", "Adventure"},
		Director:     []string{"Denis Villeneuve"},
		OnlineRating: 8.0,
		Released:     true,
	}
}

func TestWriter(t *testing.T) {
	Convey("Given a note writer on a clean filesystem", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.NotesFolder, "/notes")
		viper.Set(key.NotesFilenameTemplate, "{{ .Title }} ({{ .Year }})")
		viper.Set(key.NotesOverwrite, false)

		writer, err := NewWriter()
		So(err, ShouldBeNil)

		Convey("Writing a record produces a markdown note with frontmatter", func() {
			path, err := writer.Write(testMovie())

			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/notes/Dune_(2021).md")

			contents, err := afero.ReadFile(filesystem.API(), path)
			So(err, ShouldBeNil)

			note := string(contents)
			So(strings.HasPrefix(note, "---\n"), ShouldBeTrue)
			So(note, ShouldContainSubstring, "type: movie")
			So(note, ShouldContainSubstring, "title: Dune")
			So(note, ShouldContainSubstring, "onlineRating: 8")
			So(note, ShouldContainSubstring, "watched: false")
		})

		Convey("A second write does not clobber the first note", func() {
			first, err := writer.Write(testMovie())
			So(err, ShouldBeNil)

			second, err := writer.Write(testMovie())
			So(err, ShouldBeNil)

			So(second, ShouldNotEqual, first)
			So(second, ShouldEqual, "/notes/Dune_(2021)_1.md")
		})

		Convey("With overwriting enabled the path is reused", func() {
			viper.Set(key.NotesOverwrite, true)
			defer viper.Set(key.NotesOverwrite, false)

			first, err := writer.Write(testMovie())
			So(err, ShouldBeNil)

			second, err := writer.Write(testMovie())
			So(err, ShouldBeNil)
			So(second, ShouldEqual, first)
		})

		Convey("Reading a note back restores the flattened record", func() {
			path, err := writer.Write(testMovie())
			So(err, ShouldBeNil)

			mediaType, fields, err := writer.ReadBack(path)

			So(err, ShouldBeNil)
			So(mediaType, ShouldEqual, media.TypeMovie)
			So(fields["title"], ShouldEqual, "Dune")
			So(fields["dataSource"], ShouldEqual, "OMDbAPI")
		})

		Convey("A note without frontmatter is rejected on read-back", func() {
			So(afero.WriteFile(
				filesystem.API(), "/notes/plain.md", []byte("just text"), 0644,
			), ShouldBeNil)

			_, _, err := writer.ReadBack("/notes/plain.md")

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "frontmatter")
		})
	})
}

func TestWriterWithRemapRules(t *testing.T) {
	Convey("Given a writer with remap rules", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.NotesFolder, "/notes")
		viper.Set(key.NotesFilenameTemplate, "{{ .Title }}")

		So(remap.Save(remap.Rules{
			media.TypeMovie: {
				{Field: "onlineRating", Action: remap.ActionRename, To: "rating"},
				{Field: "director", Action: remap.ActionWikilink},
			},
		}), ShouldBeNil)

		writer, err := NewWriter()
		So(err, ShouldBeNil)

		Convey("The emitted frontmatter uses the remapped fields", func() {
			path, err := writer.Write(testMovie())
			So(err, ShouldBeNil)

			contents, err := afero.ReadFile(filesystem.API(), path)
			So(err, ShouldBeNil)

			note := string(contents)
			So(note, ShouldContainSubstring, "rating: 8")
			So(note, ShouldNotContainSubstring, "onlineRating")
			So(note, ShouldContainSubstring, "[[Denis Villeneuve]]")
		})

		Convey("Read-back reverses the remapping", func() {
			path, err := writer.Write(testMovie())
			So(err, ShouldBeNil)

			_, fields, err := writer.ReadBack(path)

			So(err, ShouldBeNil)
			So(fields["onlineRating"], ShouldEqual, 8)
			So(fields, ShouldNotContainKey, "rating")
			So(fields["director"], ShouldResemble, []any{"Denis Villeneuve"})
		})
	})
}

func TestFilename(t *testing.T) {
	Convey("Given the filename template", t, func() {
		viper.Set(key.NotesFilenameTemplate, "{{ .Type }} - {{ .Title }} ({{ .Year }})")

		Convey("Template fields are substituted", func() {
			name, err := Filename(testMovie())

			So(err, ShouldBeNil)
			So(name, ShouldEqual, "movie_-_Dune_(2021).md")
		})

		Convey("Unsafe characters are sanitized", func() {
			movie := testMovie()
			movie.Title = "Dune: Part/Two"

			name, err := Filename(movie)

			So(err, ShouldBeNil)
			So(name, ShouldNotContainSubstring, "/")
			So(name, ShouldNotContainSubstring, ":")
		})

		Convey("A malformed template is reported", func() {
			viper.Set(key.NotesFilenameTemplate, "{{ .Title")
			defer viper.Set(key.NotesFilenameTemplate, "{{ .Title }} ({{ .Year }})")

			_, err := Filename(testMovie())

			So(err, ShouldNotBeNil)
		})
	})
}
