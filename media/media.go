// Package media defines the unified polymorphic record model shared by every metadata API.
package media

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Type discriminates the closed set of media record variants.
// It is the dispatch key wherever records are serialized, filtered, or routed
// to file-naming templates, and is fixed per variant, never user-supplied.
type Type string

const (
	TypeMovie        Type = "movie"
	TypeSeries       Type = "series"
	TypeSeason       Type = "season"
	TypeGame         Type = "game"
	TypeBook         Type = "book"
	TypeComicManga   Type = "comicManga"
	TypeBoardGame    Type = "boardgame"
	TypeMusicRelease Type = "musicRelease"
	TypeWiki         Type = "wiki"
)

// Year sentinels for upstream records without a usable release date.
// Adapters never guess beyond what the source provides.
const (
	YearUnknown = "unknown"
	YearTBA     = "TBA"
)

// Types returns all known media type tags in declaration order.
func Types() []Type {
	return []Type{
		TypeMovie, TypeSeries, TypeSeason, TypeGame, TypeBook,
		TypeComicManga, TypeBoardGame, TypeMusicRelease, TypeWiki,
	}
}

// ParseType resolves a string tag to a known media type.
func ParseType(s string) (Type, bool) {
	for _, t := range Types() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Meta holds the base fields every record variant shares.
// The pair (DataSource, ID) is the record's natural key: IDs are opaque and
// unique only within their source. DataSource is the exact API name that
// produced the record and stays stable for the record's lifetime, since it is
// how detail lookups are routed back to the owning adapter.
type Meta struct {
	SubType      string `json:"subType,omitempty"`
	Title        string `json:"title"`
	EnglishTitle string `json:"englishTitle"`
	Year         string `json:"year"`
	DataSource   string `json:"dataSource"`
	URL          string `json:"url,omitempty"`
	ID           string `json:"id"`
}

// String returns the canonical display form "Title (Year)".
func (m *Meta) String() string {
	return fmt.Sprintf("%s (%s)", m.Title, m.Year)
}

// Record is the polymorphic interface over all media variants.
// Records are immutable value objects from the adapter's point of view:
// adapters construct a fresh instance per call and never mutate one afterwards.
// Only the local persistence layer touches the variant's user-data block.
type Record interface {
	// Type returns the variant's fixed classification tag.
	Type() Type

	// Base exposes the shared base fields.
	Base() *Meta

	// Flatten renders the record as a flat key/value map suitable for the
	// field remapping layer and note frontmatter. User-data fields are
	// lifted to the top level; the "type" key always carries Type().
	Flatten() (map[string]any, error)
}

// flatten is the common Flatten implementation backing every variant.
func flatten(r Record) (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("flatten %s record: %w", r.Type(), err)
	}

	m := make(map[string]any)
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("flatten %s record: %w", r.Type(), err)
	}

	if userData, ok := m["userData"].(map[string]any); ok {
		delete(m, "userData")
		for k, v := range userData {
			m[k] = v
		}
	}

	m["type"] = string(r.Type())
	return m, nil
}

// FieldKeys returns every flattened field name a record of the given type can
// carry, derived from the variant's JSON tags. User-data fields appear at the
// top level, mirroring Flatten, and "type" is always first.
func FieldKeys(t Type) ([]string, error) {
	stub, err := NewStub(t, Meta{})
	if err != nil {
		return nil, err
	}

	keys := []string{"type"}
	return append(keys, structKeys(reflect.TypeOf(stub).Elem())...), nil
}

// structKeys collects JSON field names, descending into embedded structs and
// the user-data block the same way flatten lifts them.
func structKeys(t reflect.Type) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		if field.Anonymous || name == "userData" {
			keys = append(keys, structKeys(field.Type)...)
			continue
		}

		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}

// NewStub constructs an empty record of the given type carrying only base fields.
// Search results are stubs; GetByID replaces them with fully populated records.
func NewStub(t Type, meta Meta) (Record, error) {
	switch t {
	case TypeMovie:
		return &Movie{Meta: meta}, nil
	case TypeSeries:
		return &Series{Meta: meta}, nil
	case TypeSeason:
		return &Season{Meta: meta}, nil
	case TypeGame:
		return &Game{Meta: meta}, nil
	case TypeBook:
		return &Book{Meta: meta}, nil
	case TypeComicManga:
		return &ComicManga{Meta: meta}, nil
	case TypeBoardGame:
		return &BoardGame{Meta: meta}, nil
	case TypeMusicRelease:
		return &MusicRelease{Meta: meta}, nil
	case TypeWiki:
		return &Wiki{Meta: meta}, nil
	default:
		return nil, fmt.Errorf("unknown media type %q", t)
	}
}
