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

func TestWikipedia(t *testing.T) {
	Convey("Given the Wikipedia adapter", t, func() {
		viper.Set(key.WikipediaLanguage, "en")

		Convey("When searching for an ambiguous name", func() {
			calls := 0
			wiki := NewWikipedia(mockClient(func(req *http.Request) (*http.Response, error) {
				calls++
				So(req.URL.Host, ShouldEqual, "en.wikipedia.org")
				So(req.URL.Query().Get("srsearch"), ShouldEqual, "Jackson")
				return respond(http.StatusOK, `{
					"query": {
						"search": [
							{"title": "Michael Jackson", "pageid": 14995351, "timestamp": "2023-01-15T10:00:00Z"},
							{"title": "Jackson, Mississippi", "pageid": 43798, "timestamp": "2023-02-01T10:00:00Z"},
							{"title": "Janet Jackson", "pageid": 15809, "timestamp": "2023-03-05T10:00:00Z"},
							{"title": "Jackson 5", "pageid": 49373, "timestamp": "2023-04-10T10:00:00Z"}
						]
					}
				}`), nil
			}))

			records, err := wiki.SearchByTitle(context.Background(), "Jackson")

			Convey("Every hit becomes a wiki stub in upstream order", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 4)
				So(records[0].Base().Title, ShouldEqual, "Michael Jackson")
				So(records[3].Base().Title, ShouldEqual, "Jackson 5")

				for _, record := range records {
					So(record.Type(), ShouldEqual, media.TypeWiki)
					So(record.Base().DataSource, ShouldEqual, "WikipediaAPI")
				}
			})

			Convey("A repeated search is served from the cache", func() {
				again, err := wiki.SearchByTitle(context.Background(), "Jackson")

				So(err, ShouldBeNil)
				So(again, ShouldHaveLength, 4)
				So(calls, ShouldEqual, 1)
			})
		})

		Convey("When fetching an article", func() {
			wiki := NewWikipedia(mockClient(func(req *http.Request) (*http.Response, error) {
				So(req.URL.Query().Get("pageids"), ShouldEqual, "14995351")
				return respond(http.StatusOK, `{
					"query": {
						"pages": {
							"14995351": {
								"pageid": 14995351,
								"title": "Michael Jackson",
								"extract": "<p><b>Michael Jackson</b> was an American singer.</p>",
								"fullurl": "https://en.wikipedia.org/wiki/Michael_Jackson",
								"touched": "2023-01-15T10:00:00Z",
								"length": 472931
							}
						}
					}
				}`), nil
			}))

			record, err := wiki.GetByID(context.Background(), "14995351")

			Convey("The summary is stripped of markup", func() {
				So(err, ShouldBeNil)

				article, ok := record.(*media.Wiki)
				So(ok, ShouldBeTrue)
				So(article.Summary, ShouldEqual, "Michael Jackson was an American singer.")
				So(article.WikiURL, ShouldEqual, "https://en.wikipedia.org/wiki/Michael_Jackson")
				So(article.Length, ShouldEqual, 472931)
			})
		})

		Convey("When the article id does not exist", func() {
			wiki := NewWikipedia(mockClient(func(req *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `{
					"query": {"pages": {"-1": {"missing": ""}}}
				}`), nil
			}))

			_, err := wiki.GetByID(context.Background(), "999999999")

			Convey("The failure is classified as not found", func() {
				So(IsNotFound(err), ShouldBeTrue)
			})
		})
	})
}
