package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mediadex-cli/mediadex/auth"
	"github.com/mediadex-cli/mediadex/dateformat"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const omdbEndpoint = "https://www.omdbapi.com/"

// OMDb adapts the OMDb REST API. It aggregates three media kinds behind one
// upstream, so users can suppress individual kinds through the disabled-types
// setting.
type OMDb struct {
	info   Info
	client *http.Client
}

// NewOMDb constructs the OMDb adapter. A nil client falls back to the shared tuned client.
func NewOMDb(client *http.Client) *OMDb {
	return &OMDb{
		info: Info{
			Name:             "OMDbAPI",
			Description:      "Movie, series and game metadata from the Open Movie Database",
			URL:              "https://www.omdbapi.com/",
			Types:            []media.Type{media.TypeMovie, media.TypeSeries, media.TypeGame},
			DisabledTypesKey: key.OMDbDisabledTypes,
		},
		client: client,
	}
}

func (o *OMDb) Info() Info { return o.info }

func (o *OMDb) apiKey() (string, error) {
	k := auth.Get(o.info.Name, key.OMDbAPIKey)
	if k == "" {
		return "", ConfigError(o.info.Name, "api key not configured")
	}
	return k, nil
}

type omdbSearchResponse struct {
	Search []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		IMDbID string `json:"imdbID"`
		Type   string `json:"Type"`
	} `json:"Search"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type omdbDetailResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	TotalSeas  string `json:"totalSeasons"`
	Production string `json:"Production"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// SearchByTitle queries OMDb's title search and maps hits to stub records.
func (o *OMDb) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	apiKey, err := o.apiKey()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("apikey", apiKey)
	q.Set("s", title)

	var response omdbSearchResponse
	if err := getJSON(ctx, o.client, o.info.Name, omdbEndpoint+"?"+q.Encode(), nil, &response); err != nil {
		return nil, err
	}

	// OMDb reports "no matches" as an error payload inside a 200 envelope.
	if response.Response != "True" {
		log.Infof("%s: no results (%s)", o.info.Name, response.Error)
		return []media.Record{}, nil
	}

	records := make([]media.Record, 0, len(response.Search))
	for _, hit := range response.Search {
		if len(records) == SearchResultCap {
			break
		}

		mediaType, ok := omdbType(hit.Type)
		if !ok || !o.info.TypeEnabled(mediaType) {
			continue
		}

		stub, err := media.NewStub(mediaType, media.Meta{
			Title:        hit.Title,
			EnglishTitle: hit.Title,
			Year:         omdbYear(hit.Year),
			DataSource:   o.info.Name,
			URL:          "https://www.imdb.com/title/" + hit.IMDbID,
			ID:           hit.IMDbID,
		})
		if err != nil {
			return nil, UpstreamError(o.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

// GetByID fetches the full OMDb record for an IMDb id previously produced by SearchByTitle.
func (o *OMDb) GetByID(ctx context.Context, id string) (media.Record, error) {
	apiKey, err := o.apiKey()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("apikey", apiKey)
	q.Set("i", id)
	q.Set("plot", "full")

	var d omdbDetailResponse
	if err := getJSON(ctx, o.client, o.info.Name, omdbEndpoint+"?"+q.Encode(), nil, &d); err != nil {
		return nil, err
	}

	if d.Response != "True" {
		return nil, UpstreamError(o.info.Name, 0, fmt.Sprintf("id %q: %s", id, d.Error))
	}

	meta := media.Meta{
		Title:        d.Title,
		EnglishTitle: d.Title,
		Year:         omdbYear(d.Year),
		DataSource:   o.info.Name,
		URL:          "https://www.imdb.com/title/" + d.IMDbID,
		ID:           d.IMDbID,
	}

	rating := omdbRating(d.IMDbRating)
	released := dateformat.Format(d.Released, mo.None[string]())
	poster := omdbValue(d.Poster)

	mediaType, ok := omdbType(d.Type)
	if !ok {
		return nil, UpstreamError(o.info.Name, 0, fmt.Sprintf("unexpected media type %q for id %q", d.Type, id))
	}

	switch mediaType {
	case media.TypeSeries:
		return &media.Series{
			Meta:         meta,
			Plot:         omdbValue(d.Plot),
			Genres:       omdbList(d.Genre),
			Writer:       omdbList(d.Writer),
			Actors:       omdbList(d.Actors),
			Duration:     omdbValue(d.Runtime),
			OnlineRating: rating,
			Image:        poster,
			Released:     true,
			AiredFrom:    released.OrElse(""),
		}, nil
	case media.TypeGame:
		return &media.Game{
			Meta:         meta,
			Plot:         omdbValue(d.Plot),
			Genres:       omdbList(d.Genre),
			OnlineRating: rating,
			Image:        poster,
			Released:     true,
			ReleaseDate:  released.OrElse(""),
		}, nil
	default:
		return &media.Movie{
			Meta:         meta,
			Plot:         omdbValue(d.Plot),
			Genres:       omdbList(d.Genre),
			Director:     omdbList(d.Director),
			Writer:       omdbList(d.Writer),
			Actors:       omdbList(d.Actors),
			Studio:       omdbList(d.Production),
			Duration:     omdbValue(d.Runtime),
			OnlineRating: rating,
			Image:        poster,
			Released:     true,
			Premiere:     released.OrElse(""),
		}, nil
	}
}

func omdbType(t string) (media.Type, bool) {
	switch strings.ToLower(t) {
	case "movie":
		return media.TypeMovie, true
	case "series":
		return media.TypeSeries, true
	case "game":
		return media.TypeGame, true
	default:
		return "", false
	}
}

// omdbYear extracts a four-digit year; series report ranges like "2011–2019".
func omdbYear(year string) string {
	year = strings.TrimSpace(year)
	if len(year) < 4 {
		return media.YearUnknown
	}
	return year[:4]
}

func omdbRating(raw string) float64 {
	var rating float64
	if _, err := fmt.Sscanf(raw, "%f", &rating); err != nil {
		return 0
	}
	return rating
}

// omdbValue filters OMDb's "N/A" placeholder.
func omdbValue(raw string) string {
	if raw == "N/A" {
		return ""
	}
	return raw
}

func omdbList(raw string) []string {
	if omdbValue(raw) == "" {
		return nil
	}
	return lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
}
