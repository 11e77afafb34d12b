package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/mediadex-cli/mediadex/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestMobyGames(t *testing.T) {
	Convey("Given the MobyGames adapter", t, func() {
		viper.Set(key.MobyGamesAPIKey, "test-key")
		defer viper.Set(key.MobyGamesAPIKey, "")

		moby := NewMobyGames(mockClient(func(req *http.Request) (*http.Response, error) {
			So(req.URL.Query().Get("api_key"), ShouldEqual, "test-key")
			return respond(http.StatusOK, `{"games":[]}`), nil
		}))

		Convey("When no api key is configured", func() {
			viper.Set(key.MobyGamesAPIKey, "")

			_, err := moby.SearchByTitle(context.Background(), "doom")

			So(IsConfig(err), ShouldBeTrue)
		})

		Convey("A cancelled context aborts the request spacing wait", func() {
			// The first call stamps lastCall, forcing the second to pause.
			_, err := moby.SearchByTitle(context.Background(), "doom")
			So(err, ShouldBeNil)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			start := time.Now()
			_, err = moby.SearchByTitle(ctx, "doom")

			So(err, ShouldNotBeNil)
			So(IsTransport(err), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, 500*time.Millisecond)
		})
	})
}
