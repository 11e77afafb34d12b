package api

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// cacheData defines the structured format for persisting cached search results to disk.
type cacheData struct {
	Searches map[string][]stubEntry `json:"searches"`
}

// stubEntry is the serializable form of a stub record. Stubs only ever carry
// base fields, so the (type, meta) pair reconstructs them losslessly.
type stubEntry struct {
	Type media.Type `json:"type"`
	Meta media.Meta `json:"meta"`
}

// searchCacher provides filesystem-backed persistence for title search results,
// keyed by "<api name>:<normalized title>". Keyless upstreams with strict
// courtesy limits (Jikan, MusicBrainz, Wikipedia) are the intended users.
type searchCacher struct {
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

var stubCacher = &searchCacher{
	internal: gache.New[*cacheData](
		&gache.Options{
			Path:       filepath.Join(where.Cache(), "search_cache.json"),
			Lifetime:   time.Hour * 24,
			FileSystem: &filesystem.GacheFs{},
		},
	),
}

func searchKey(apiName, title string) string {
	return apiName + ":" + strings.ToLower(strings.TrimSpace(title))
}

// Get retrieves cached stub records for a search, rebuilding typed variants.
func (c *searchCacher) Get(apiName, title string) mo.Option[[]media.Record] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[[]media.Record]()
	}

	entries, ok := data.Searches[searchKey(apiName, title)]
	if !ok {
		return mo.None[[]media.Record]()
	}

	records := lo.FilterMap(entries, func(e stubEntry, _ int) (media.Record, bool) {
		stub, err := media.NewStub(e.Type, e.Meta)
		return stub, err == nil
	})
	return mo.Some(records)
}

// Set persists the stub records of a completed search.
func (c *searchCacher) Set(apiName, title string, records []media.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := lo.Map(records, func(r media.Record, _ int) stubEntry {
		return stubEntry{Type: r.Type(), Meta: *r.Base()}
	})

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		data = &cacheData{Searches: make(map[string][]stubEntry)}
	}

	data.Searches[searchKey(apiName, title)] = entries
	if err := c.internal.Set(data); err != nil {
		log.Warnf("failed to persist search cache: %v", err)
	}
}

// cachedSearch wraps a search call with cache lookup and write-back.
func cachedSearch(apiName, title string, fetch func() ([]media.Record, error)) ([]media.Record, error) {
	if cached, ok := stubCacher.Get(apiName, title).Get(); ok {
		log.Debugf("%s: search cache hit for %q", apiName, title)
		return cached, nil
	}

	records, err := fetch()
	if err != nil {
		return nil, err
	}

	stubCacher.Set(apiName, title, records)
	return records, nil
}
