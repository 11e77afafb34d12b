package api

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/media"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// roundTripFunc lets a test stand in for an upstream without opening sockets.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func mockClient(f roundTripFunc) *http.Client {
	return &http.Client{Transport: f}
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestInfo(t *testing.T) {
	Convey("Given an api description", t, func() {
		info := Info{
			Name:  "SomeAPI",
			Types: []media.Type{media.TypeMovie, media.TypeSeries},
		}

		Convey("It reports which media types it serves", func() {
			So(info.HasType(media.TypeMovie), ShouldBeTrue)
			So(info.HasType(media.TypeBook), ShouldBeFalse)
		})

		Convey("It detects overlap with a requested type set", func() {
			So(info.HasTypeOverlap([]media.Type{media.TypeBook, media.TypeSeries}), ShouldBeTrue)
			So(info.HasTypeOverlap([]media.Type{media.TypeBook}), ShouldBeFalse)
		})

		Convey("Without a disable key every served type is enabled", func() {
			So(info.TypeEnabled(media.TypeMovie), ShouldBeTrue)
		})
	})
}
