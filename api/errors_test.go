package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("Given the adapter error taxonomy", t, func() {
		Convey("Every constructor names the adapter and classifies correctly", func() {
			cases := []struct {
				err  error
				kind Kind
			}{
				{ConfigError("SomeAPI", "missing key"), KindConfig},
				{AuthError("SomeAPI", http.StatusUnauthorized), KindAuth},
				{RateLimitError("SomeAPI", http.StatusTooManyRequests), KindRateLimit},
				{UpstreamError("SomeAPI", http.StatusBadGateway, "boom"), KindUpstream},
				{TransportError("SomeAPI", errors.New("connection refused")), KindTransport},
				{NotFoundError("SomeAPI", "no such id"), KindNotFound},
			}

			for _, c := range cases {
				kind, ok := ErrorKind(c.err)
				So(ok, ShouldBeTrue)
				So(kind, ShouldEqual, c.kind)
				So(c.err.Error(), ShouldContainSubstring, "SomeAPI")
			}
		})

		Convey("HTTP statuses map onto the taxonomy", func() {
			So(IsAuth(statusError("SomeAPI", "401 Unauthorized", http.StatusUnauthorized)), ShouldBeTrue)
			So(IsAuth(statusError("SomeAPI", "403 Forbidden", http.StatusForbidden)), ShouldBeTrue)
			So(IsRateLimit(statusError("SomeAPI", "429 Too Many Requests", http.StatusTooManyRequests)), ShouldBeTrue)
			So(IsUpstream(statusError("SomeAPI", "500 Internal Server Error", http.StatusInternalServerError)), ShouldBeTrue)
		})

		Convey("Wrapped errors still classify", func() {
			wrapped := fmt.Errorf("query failed: %w", RateLimitError("SomeAPI", 429))

			So(IsRateLimit(wrapped), ShouldBeTrue)
			So(IsAuth(wrapped), ShouldBeFalse)
		})

		Convey("Transport failures surface through the request helper", func() {
			client := mockClient(func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: connection refused")
			})

			var v struct{}
			err := getJSON(context.Background(), client, "SomeAPI", "https://example.com", nil, &v)

			So(IsTransport(err), ShouldBeTrue)
		})

		Convey("Malformed payloads are upstream failures", func() {
			client := mockClient(func(req *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `{"broken":`), nil
			})

			var v struct{}
			err := getJSON(context.Background(), client, "SomeAPI", "https://example.com", nil, &v)

			So(IsUpstream(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "malformed json")
		})
	})
}
