package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mediadex-cli/mediadex/api"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeAPI is a scriptable adapter for coordinator tests.
type fakeAPI struct {
	info    api.Info
	delay   time.Duration
	titles  []string
	fail    error
	detail  media.Record
	queried int
	mu      sync.Mutex
}

func newFakeAPI(name string, delay time.Duration, titles ...string) *fakeAPI {
	return &fakeAPI{
		info: api.Info{
			Name:  name,
			Types: []media.Type{media.TypeMovie},
		},
		delay:  delay,
		titles: titles,
	}
}

func (f *fakeAPI) Info() api.Info { return f.info }

func (f *fakeAPI) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	f.mu.Lock()
	f.queried++
	f.mu.Unlock()

	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, api.TransportError(f.info.Name, ctx.Err())
	}

	if f.fail != nil {
		return nil, f.fail
	}

	return lo.Map(f.titles, func(t string, i int) media.Record {
		return lo.Must(media.NewStub(media.TypeMovie, media.Meta{
			Title:      t,
			Year:       "2020",
			DataSource: f.info.Name,
			ID:         t,
		}))
	}), nil
}

func (f *fakeAPI) GetByID(ctx context.Context, id string) (media.Record, error) {
	if f.detail == nil {
		return nil, api.NotFoundError(f.info.Name, "no such id")
	}
	return f.detail, nil
}

func TestRegistry(t *testing.T) {
	Convey("Given a registry of adapters", t, func() {
		r := New()
		first := newFakeAPI("FirstAPI", 30*time.Millisecond, "alpha", "beta")
		second := newFakeAPI("SecondAPI", 0, "gamma")

		So(r.RegisterAPI(first), ShouldBeNil)
		So(r.RegisterAPI(second), ShouldBeNil)

		Convey("Duplicate names are rejected", func() {
			So(r.RegisterAPI(newFakeAPI("FirstAPI", 0)), ShouldNotBeNil)
		})

		Convey("Names come back in registration order", func() {
			So(r.Names(), ShouldResemble, []string{"FirstAPI", "SecondAPI"})
		})

		Convey("Unknown adapter lookups classify as not found", func() {
			_, err := r.GetAPIByName("NoSuchAPI")
			So(api.IsNotFound(err), ShouldBeTrue)
		})

		Convey("A query merges results in registration order", func() {
			// SecondAPI answers instantly, FirstAPI after a delay; the
			// merged order must not depend on that.
			records, queryErrors, err := r.Query(context.Background(), "any", nil)

			So(err, ShouldBeNil)
			So(queryErrors, ShouldBeEmpty)
			So(lo.Map(records, func(r media.Record, _ int) string {
				return r.Base().Title
			}), ShouldResemble, []string{"alpha", "beta", "gamma"})
		})

		Convey("A query can be narrowed to selected adapters", func() {
			records, _, err := r.Query(context.Background(), "any", []string{"SecondAPI"})

			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
			So(records[0].Base().DataSource, ShouldEqual, "SecondAPI")
			So(first.queried, ShouldEqual, 0)
		})

		Convey("Selecting an unknown adapter fails the query up front", func() {
			_, _, err := r.Query(context.Background(), "any", []string{"NoSuchAPI"})

			So(api.IsNotFound(err), ShouldBeTrue)
			So(first.queried, ShouldEqual, 0)
		})

		Convey("One failing adapter does not take down the query", func() {
			second.fail = api.RateLimitError("SecondAPI", 429)

			records, queryErrors, err := r.Query(context.Background(), "any", nil)

			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)
			So(queryErrors, ShouldHaveLength, 1)
			So(queryErrors[0].API, ShouldEqual, "SecondAPI")
			So(api.IsRateLimit(queryErrors[0]), ShouldBeTrue)
		})

		Convey("A newer query supersedes the one in flight", func() {
			slow := newFakeAPI("SlowAPI", 300*time.Millisecond, "stale")
			So(r.RegisterAPI(slow), ShouldBeNil)

			type outcome struct {
				records []media.Record
				err     error
			}
			done := make(chan outcome, 1)
			go func() {
				records, _, err := r.Query(context.Background(), "old", []string{"SlowAPI"})
				done <- outcome{records, err}
			}()

			// Give the first query time to start before superseding it.
			time.Sleep(50 * time.Millisecond)
			fresh, _, err := r.Query(context.Background(), "new", []string{"SecondAPI"})
			So(err, ShouldBeNil)
			So(fresh, ShouldHaveLength, 1)

			stale := <-done
			So(stale.err, ShouldEqual, ErrSuperseded)
			So(stale.records, ShouldBeEmpty)
		})

		Convey("Cancelling the caller's context is not reported as supersession", func() {
			slow := newFakeAPI("SlowAPI", 300*time.Millisecond, "stale")
			So(r.RegisterAPI(slow), ShouldBeNil)

			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan error, 1)
			go func() {
				_, _, err := r.Query(ctx, "doomed", []string{"SlowAPI"})
				done <- err
			}()

			time.Sleep(50 * time.Millisecond)
			cancel()

			err := <-done
			So(err, ShouldEqual, context.Canceled)
			So(err, ShouldNotEqual, ErrSuperseded)
		})

		Convey("Detail lookups route back to the producing adapter", func() {
			second.detail = lo.Must(media.NewStub(media.TypeMovie, media.Meta{
				Title:      "gamma",
				DataSource: "SecondAPI",
				ID:         "gamma",
			}))

			stub := lo.Must(media.NewStub(media.TypeMovie, media.Meta{
				Title:      "gamma",
				DataSource: "SecondAPI",
				ID:         "gamma",
			}))

			record, err := r.QueryDetailedInfo(context.Background(), stub)

			So(err, ShouldBeNil)
			So(record.Base().Title, ShouldEqual, "gamma")
		})

		Convey("Detail lookups for an unknown source classify as not found", func() {
			stub := lo.Must(media.NewStub(media.TypeMovie, media.Meta{
				Title:      "ghost",
				DataSource: "GhostAPI",
				ID:         "1",
			}))

			_, err := r.QueryDetailedInfo(context.Background(), stub)

			So(api.IsNotFound(err), ShouldBeTrue)
		})
	})
}

func TestSortByRelevance(t *testing.T) {
	Convey("Given merged records from several sources", t, func() {
		stub := func(title string) media.Record {
			return lo.Must(media.NewStub(media.TypeMovie, media.Meta{
				Title:      title,
				DataSource: "SomeAPI",
				ID:         title,
			}))
		}

		records := []media.Record{
			stub("Dune: Part Two"),
			stub("Duel"),
			stub("Dune"),
			stub("June Again"),
		}

		SortByRelevance(records, "dune")

		Convey("The closest title comes first", func() {
			So(records[0].Base().Title, ShouldEqual, "Dune")
			So(records[1].Base().Title, ShouldEqual, "Dune: Part Two")
		})
	})
}
