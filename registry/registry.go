// Package registry coordinates queries across every registered source adapter.
//
// A query fans out to the selected adapters concurrently and merges results
// back in registration order, so the merged list is deterministic regardless of
// which upstream answered first. Adapter failures are isolated: one broken or
// misconfigured source never takes down a whole query.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mediadex-cli/mediadex/api"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
)

// ErrSuperseded reports that a newer query started while this one was in
// flight; its results must be discarded.
var ErrSuperseded = errors.New("query superseded by a newer one")

// QueryError pairs a failed adapter with its classified failure.
type QueryError struct {
	API string
	Err error
}

func (e QueryError) Error() string {
	return e.Err.Error()
}

func (e QueryError) Unwrap() error {
	return e.Err
}

// Registry holds the known source adapters in registration order.
type Registry struct {
	mu     sync.Mutex
	apis   []api.API
	byName map[string]api.API

	// cancel aborts the previous in-flight query when a new one starts,
	// marking it with ErrSuperseded as the cancellation cause.
	cancel context.CancelCauseFunc
}

func New() *Registry {
	return &Registry{
		byName: make(map[string]api.API),
	}
}

// Default returns a registry with every built-in adapter registered.
func Default() *Registry {
	r := New()
	for _, a := range []api.API{
		api.NewOMDb(nil),
		api.NewMAL(nil),
		api.NewMALManga(nil),
		api.NewAniList(nil),
		api.NewWikipedia(nil),
		api.NewMusicBrainz(nil),
		api.NewSteam(nil),
		api.NewIGDB(nil),
		api.NewMobyGames(nil),
		api.NewGiantBomb(nil),
		api.NewComicVine(nil),
		api.NewBoardGameGeek(nil),
		api.NewOpenLibrary(nil),
	} {
		lo.Must0(r.RegisterAPI(a))
	}
	return r
}

// RegisterAPI adds an adapter. Names must be unique since they double as the
// DataSource tag that routes detail lookups back to their origin.
func (r *Registry) RegisterAPI(a api.API) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := a.Info().Name
	if name == "" {
		return fmt.Errorf("adapter name cannot be empty")
	}
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("adapter %q is already registered", name)
	}

	r.apis = append(r.apis, a)
	r.byName[name] = a
	return nil
}

// GetAPIByName resolves an adapter by its stable name.
func (r *Registry) GetAPIByName(name string) (api.API, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byName[name]
	if !ok {
		return nil, api.NotFoundError(name, "unknown source")
	}
	return a, nil
}

// Names lists the registered adapter names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return lo.Map(r.apis, func(a api.API, _ int) string {
		return a.Info().Name
	})
}

// APIs lists the registered adapters in registration order.
func (r *Registry) APIs() []api.API {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]api.API(nil), r.apis...)
}

// selectAPIs resolves the requested adapter names, or every registered adapter
// when the selection is empty.
func (r *Registry) selectAPIs(names []string) ([]api.API, error) {
	if len(names) == 0 {
		return r.APIs(), nil
	}

	apis := make([]api.API, 0, len(names))
	for _, name := range names {
		a, err := r.GetAPIByName(name)
		if err != nil {
			return nil, err
		}
		apis = append(apis, a)
	}
	return apis, nil
}

// begin registers a new in-flight query, aborting the previous one.
func (r *Registry) begin(ctx context.Context) (context.Context, context.CancelCauseFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel(ErrSuperseded)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	r.cancel = cancel
	return ctx, cancel
}

// Query searches the selected adapters for a title and merges their stub
// records in registration order. Individual adapter failures are collected
// and reported alongside the partial result instead of failing the query.
//
// Starting a new query aborts any previous in-flight one, which then returns
// ErrSuperseded so stale results are never rendered over fresh ones.
func (r *Registry) Query(ctx context.Context, title string, apiNames []string) ([]media.Record, []QueryError, error) {
	apis, err := r.selectAPIs(apiNames)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := r.begin(ctx)
	defer cancel(nil)

	results := make([][]media.Record, len(apis))
	failures := make([]error, len(apis))

	var wg conc.WaitGroup
	for idx, a := range apis {
		idx, a := idx, a
		wg.Go(func() {
			records, err := a.SearchByTitle(ctx, title)
			if err != nil {
				failures[idx] = err
				return
			}
			results[idx] = records
		})
	}
	wg.Wait()

	// The cancellation cause separates supersession from the caller's own
	// context being cancelled or timing out.
	if cause := context.Cause(ctx); cause != nil {
		if errors.Is(cause, ErrSuperseded) {
			return nil, nil, ErrSuperseded
		}
		return nil, nil, cause
	}

	var merged []media.Record
	var queryErrors []QueryError
	for idx, a := range apis {
		if err := failures[idx]; err != nil {
			log.Warnf("%s failed: %v", a.Info().Name, err)
			queryErrors = append(queryErrors, QueryError{API: a.Info().Name, Err: err})
			continue
		}
		merged = append(merged, results[idx]...)
	}

	return merged, queryErrors, nil
}

// QueryDetailedInfoByID fetches one fully populated record from the named adapter.
func (r *Registry) QueryDetailedInfoByID(ctx context.Context, apiName, id string) (media.Record, error) {
	a, err := r.GetAPIByName(apiName)
	if err != nil {
		return nil, err
	}
	return a.GetByID(ctx, id)
}

// QueryDetailedInfo upgrades a stub record to its fully populated form by
// routing it back to the adapter that produced it.
func (r *Registry) QueryDetailedInfo(ctx context.Context, stub media.Record) (media.Record, error) {
	base := stub.Base()
	return r.QueryDetailedInfoByID(ctx, base.DataSource, base.ID)
}
