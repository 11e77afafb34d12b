package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

const igdbGamePayload = `[{
	"id": 1942,
	"name": "The Witcher 3: Wild Hunt",
	"summary": "A story-driven open world RPG.",
	"url": "https://www.igdb.com/games/the-witcher-3-wild-hunt",
	"first_release_date": 1431993600,
	"total_rating": 93.4,
	"cover": {"url": "//images.igdb.com/igdb/image/upload/t_thumb/co1wyy.jpg"},
	"genres": [{"name": "Role-playing (RPG)"}],
	"platforms": [{"name": "PC (Microsoft Windows)"}],
	"involved_companies": [
		{"developer": true, "publisher": false, "company": {"name": "CD Projekt RED"}},
		{"developer": false, "publisher": true, "company": {"name": "CD Projekt"}},
		{"developer": true, "publisher": true, "company": {"name": "CD Projekt Group"}}
	]
}]`

func TestIGDB(t *testing.T) {
	Convey("Given the IGDB adapter", t, func() {
		viper.Set(key.IGDBClientID, "client-id")
		viper.Set(key.IGDBSecret, "secret")
		viper.Set(key.DateFormat, "YYYY-MM-DD")
		defer func() {
			viper.Set(key.IGDBClientID, "")
			viper.Set(key.IGDBSecret, "")
		}()

		Convey("When credentials are missing", func() {
			viper.Set(key.IGDBSecret, "")
			igdb := NewIGDB(mockClient(func(req *http.Request) (*http.Response, error) {
				t.Fatal("no request should be sent without credentials")
				return nil, nil
			}))

			_, err := igdb.SearchByTitle(context.Background(), "witcher")

			So(IsConfig(err), ShouldBeTrue)
		})

		Convey("When querying with a valid grant", func() {
			tokenRequests := 0
			igdb := NewIGDB(mockClient(func(req *http.Request) (*http.Response, error) {
				if req.URL.Host == "id.twitch.tv" {
					tokenRequests++
					return respond(http.StatusOK, `{"access_token": "token-1", "expires_in": 5000}`), nil
				}

				So(req.Header.Get("Client-ID"), ShouldEqual, "client-id")
				So(req.Header.Get("Authorization"), ShouldEqual, "Bearer token-1")
				return respond(http.StatusOK, igdbGamePayload), nil
			}))

			// start from an empty grant so the first call always hits twitch
			So(igdb.token.Set(&igdbToken{}), ShouldBeNil)

			record, err := igdb.GetByID(context.Background(), "1942")

			Convey("The record is mapped with companies split by role", func() {
				So(err, ShouldBeNil)

				game, ok := record.(*media.Game)
				So(ok, ShouldBeTrue)
				So(game.Title, ShouldEqual, "The Witcher 3: Wild Hunt")
				So(game.Developers, ShouldResemble, []string{"CD Projekt RED", "CD Projekt Group"})
				So(game.Publishers, ShouldResemble, []string{"CD Projekt", "CD Projekt Group"})
				So(game.Year, ShouldEqual, "2015")
				So(game.ReleaseDate, ShouldEqual, "2015-05-19")
				So(game.Image, ShouldStartWith, "https://")
				So(game.Image, ShouldContainSubstring, "t_cover_big")
			})

			Convey("A second call reuses the cached token", func() {
				_, err := igdb.GetByID(context.Background(), "1942")

				So(err, ShouldBeNil)
				So(tokenRequests, ShouldEqual, 1)
			})
		})

		Convey("When the cached token has been revoked upstream", func() {
			tokenRequests := 0
			gameRequests := 0
			igdb := NewIGDB(mockClient(func(req *http.Request) (*http.Response, error) {
				if req.URL.Host == "id.twitch.tv" {
					tokenRequests++
					return respond(http.StatusOK, `{"access_token": "token-2", "expires_in": 5000}`), nil
				}

				gameRequests++
				if req.Header.Get("Authorization") != "Bearer token-2" {
					return respond(http.StatusUnauthorized, `{"message": "Authorization Failure"}`), nil
				}
				return respond(http.StatusOK, igdbGamePayload), nil
			}))

			// a cached grant that looks valid locally but was revoked upstream
			So(igdb.token.Set(&igdbToken{
				AccessToken: "stale-token",
				ExpiresAt:   time.Now().Add(time.Hour),
			}), ShouldBeNil)

			_, err := igdb.GetByID(context.Background(), "1942")

			Convey("The token is refreshed and the query retried exactly once", func() {
				So(err, ShouldBeNil)
				So(tokenRequests, ShouldEqual, 1)
				So(gameRequests, ShouldEqual, 2)
			})
		})

		Convey("When the safe-search filter is on", func() {
			viper.Set(key.SearchSfwFilter, true)
			defer viper.Set(key.SearchSfwFilter, false)

			var body string
			igdb := NewIGDB(mockClient(func(req *http.Request) (*http.Response, error) {
				if req.URL.Host == "id.twitch.tv" {
					return respond(http.StatusOK, `{"access_token": "token-3", "expires_in": 5000}`), nil
				}

				raw, _ := io.ReadAll(req.Body)
				body = string(raw)
				return respond(http.StatusOK, `[]`), nil
			}))

			_, err := igdb.SearchByTitle(context.Background(), "witcher")

			Convey("The mature theme is excluded in the query body", func() {
				So(err, ShouldBeNil)
				So(body, ShouldContainSubstring, "where themes != (42)")
				So(strings.Contains(body, `search "witcher"`), ShouldBeTrue)
			})
		})
	})
}
