package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestOMDb(t *testing.T) {
	Convey("Given the OMDb adapter", t, func() {
		viper.Set(key.OMDbAPIKey, "test-key")
		viper.Set(key.OMDbDisabledTypes, []string{})
		defer viper.Set(key.OMDbAPIKey, "")

		Convey("When the upstream rejects the key", func() {
			omdb := NewOMDb(mockClient(func(req *http.Request) (*http.Response, error) {
				return respond(http.StatusUnauthorized, `{"Response":"False","Error":"Invalid API key!"}`), nil
			}))

			_, err := omdb.SearchByTitle(context.Background(), "dune")

			Convey("The failure is classified as auth and names the adapter", func() {
				So(err, ShouldNotBeNil)
				So(IsAuth(err), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "OMDbAPI")
			})
		})

		Convey("When no api key is configured", func() {
			viper.Set(key.OMDbAPIKey, "")
			omdb := NewOMDb(mockClient(func(req *http.Request) (*http.Response, error) {
				t.Fatal("no request should be sent without a key")
				return nil, nil
			}))

			_, err := omdb.SearchByTitle(context.Background(), "dune")

			Convey("The failure is classified as config before any call", func() {
				So(IsConfig(err), ShouldBeTrue)
			})
		})

		Convey("When the search has no matches", func() {
			omdb := NewOMDb(mockClient(func(req *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `{"Response":"False","Error":"Movie not found!"}`), nil
			}))

			records, err := omdb.SearchByTitle(context.Background(), "zzzzzz")

			Convey("An empty slice comes back, not an error", func() {
				So(err, ShouldBeNil)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When the search succeeds", func() {
			omdb := NewOMDb(mockClient(func(req *http.Request) (*http.Response, error) {
				So(req.URL.Query().Get("s"), ShouldEqual, "dune")
				return respond(http.StatusOK, `{
					"Response": "True",
					"Search": [
						{"Title": "Dune", "Year": "2021", "imdbID": "tt1160419", "Type": "movie"},
						{"Title": "Dune", "Year": "2000–2000", "imdbID": "tt0142032", "Type": "series"},
						{"Title": "Dune II", "Year": "1992", "imdbID": "tt0211064", "Type": "game"}
					]
				}`), nil
			}))

			records, err := omdb.SearchByTitle(context.Background(), "dune")

			Convey("Each hit becomes a stub of the right type, tagged with the source", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0].Type(), ShouldEqual, media.TypeMovie)
				So(records[1].Type(), ShouldEqual, media.TypeSeries)
				So(records[2].Type(), ShouldEqual, media.TypeGame)
				So(records[0].Base().DataSource, ShouldEqual, "OMDbAPI")
				So(records[0].Base().ID, ShouldEqual, "tt1160419")
				So(records[1].Base().Year, ShouldEqual, "2000")
			})
		})

		Convey("When the user disabled a type for this adapter", func() {
			viper.Set(key.OMDbDisabledTypes, []string{"game"})
			defer viper.Set(key.OMDbDisabledTypes, []string{})

			omdb := NewOMDb(mockClient(func(req *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `{
					"Response": "True",
					"Search": [
						{"Title": "Dune", "Year": "2021", "imdbID": "tt1160419", "Type": "movie"},
						{"Title": "Dune II", "Year": "1992", "imdbID": "tt0211064", "Type": "game"}
					]
				}`), nil
			}))

			records, err := omdb.SearchByTitle(context.Background(), "dune")

			Convey("Hits of that type are dropped", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].Type(), ShouldEqual, media.TypeMovie)
			})
		})

		Convey("When fetching full details", func() {
			omdb := NewOMDb(mockClient(func(req *http.Request) (*http.Response, error) {
				So(req.URL.Query().Get("i"), ShouldEqual, "tt1160419")
				So(req.URL.Query().Get("plot"), ShouldEqual, "full")
				return respond(http.StatusOK, `{
					"Response": "True",
					"Title": "Dune",
					"Year": "2021",
					"Released": "22 Oct 2021",
					"Runtime": "155 min",
					"Genre": "Action, Adventure, Drama",
					"Director": "Denis Villeneuve",
					"Writer": "Jon Spaihts, Denis Villeneuve",
					"Actors": "Timothée Chalamet, Rebecca Ferguson",
					"Plot": "A noble family becomes embroiled in a war.",
					"Poster": "https://example.com/dune.jpg",
					"imdbRating": "8.0",
					"imdbID": "tt1160419",
					"Type": "movie"
				}`), nil
			}))

			viper.Set(key.DateFormat, "YYYY-MM-DD")
			record, err := omdb.GetByID(context.Background(), "tt1160419")

			Convey("The record is fully mapped", func() {
				So(err, ShouldBeNil)

				movie, ok := record.(*media.Movie)
				So(ok, ShouldBeTrue)
				So(movie.Title, ShouldEqual, "Dune")
				So(movie.Genres, ShouldResemble, []string{"Action", "Adventure", "Drama"})
				So(movie.Director, ShouldResemble, []string{"Denis Villeneuve"})
				So(movie.OnlineRating, ShouldEqual, 8.0)
				So(movie.Premiere, ShouldEqual, "2021-10-22")
				So(movie.Released, ShouldBeTrue)
			})
		})
	})
}
