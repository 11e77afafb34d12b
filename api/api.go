// Package api defines the metadata source adapter contract and its implementations.
//
// Every adapter translates exactly one upstream web API (REST+JSON, REST+XML,
// GraphQL or Apicalypse POST queries) into the unified media record model.
// Adapters own all upstream-specific request and response shaping; nothing
// upstream-shaped leaks past this package.
package api

import (
	"context"

	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// SearchResultCap bounds the number of stub records a single adapter returns per search.
const SearchResultCap = 20

// API is the capability contract every source adapter implements.
//
// SearchByTitle returns at most SearchResultCap stub records in upstream
// relevance order; zero matches is an empty slice, never an error. GetByID
// accepts only ids previously produced by the same adapter and returns one
// fully populated record. Both classify failures through this package's
// error taxonomy, always carrying the adapter name.
type API interface {
	Info() Info
	SearchByTitle(ctx context.Context, title string) ([]media.Record, error)
	GetByID(ctx context.Context, id string) (media.Record, error)
}

// Info describes an adapter: identity, upstream documentation and the media
// types it can produce. Name doubles as the DataSource tag on every record
// the adapter emits.
type Info struct {
	Name        string
	Description string
	URL         string

	// Types lists every media type tag this adapter can produce.
	Types []media.Type

	// DisabledTypesKey optionally names a viper key holding type tags the user
	// suppressed for this adapter. Only meaningful for multi-type aggregators.
	DisabledTypesKey string
}

// HasType reports whether the adapter declares the given media type.
func (i Info) HasType(t media.Type) bool {
	return lo.Contains(i.Types, t)
}

// HasTypeOverlap reports whether the adapter declares any of the given media types.
func (i Info) HasTypeOverlap(types []media.Type) bool {
	return lo.SomeBy(types, i.HasType)
}

// DisabledTypes returns the media types the user suppressed for this adapter.
func (i Info) DisabledTypes() []media.Type {
	if i.DisabledTypesKey == "" {
		return nil
	}

	return lo.FilterMap(viper.GetStringSlice(i.DisabledTypesKey), func(raw string, _ int) (media.Type, bool) {
		return media.ParseType(raw)
	})
}

// TypeEnabled reports whether records of the given type should be emitted.
func (i Info) TypeEnabled(t media.Type) bool {
	return i.HasType(t) && !lo.Contains(i.DisabledTypes(), t)
}

// String returns the adapter's stable name.
func (i Info) String() string {
	return i.Name
}
