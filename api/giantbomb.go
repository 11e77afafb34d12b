package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mediadex-cli/mediadex/auth"
	"github.com/mediadex-cli/mediadex/dateformat"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/mo"
)

const giantBombEndpoint = "https://www.giantbomb.com/api"

// giantBombOK is the in-envelope status of a successful call. The API wraps
// auth failures in an HTTP 200, so the envelope status is what actually counts.
const giantBombOK = 1
const giantBombInvalidKey = 100

// GiantBomb adapts the Giant Bomb video game database API.
type GiantBomb struct {
	info   Info
	client *http.Client
}

func NewGiantBomb(client *http.Client) *GiantBomb {
	return &GiantBomb{
		info: Info{
			Name:        "GiantBombAPI",
			Description: "Video game metadata from the Giant Bomb wiki",
			URL:         "https://www.giantbomb.com/",
			Types:       []media.Type{media.TypeGame},
		},
		client: client,
	}
}

func (g *GiantBomb) Info() Info { return g.info }

func (g *GiantBomb) apiKey() (string, error) {
	k := auth.Get(g.info.Name, key.GiantBombAPIKey)
	if k == "" {
		return "", ConfigError(g.info.Name, "api key not configured")
	}
	return k, nil
}

type gbGame struct {
	GUID                string `json:"guid"`
	Name                string `json:"name"`
	Deck                string `json:"deck"`
	SiteDetailURL       string `json:"site_detail_url"`
	OriginalReleaseDate string `json:"original_release_date"`
	ExpectedReleaseYear int    `json:"expected_release_year"`
	Image               struct {
		SuperURL string `json:"super_url"`
	} `json:"image"`
	Platforms  []gbNamed `json:"platforms"`
	Genres     []gbNamed `json:"genres"`
	Developers []gbNamed `json:"developers"`
	Publishers []gbNamed `json:"publishers"`
}

type gbNamed struct {
	Name string `json:"name"`
}

func gbNames(entries []gbNamed) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

type gbEnvelope[T any] struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Results    T      `json:"results"`
}

func checkGBEnvelope(apiName string, statusCode int, message string) error {
	switch statusCode {
	case giantBombOK:
		return nil
	case giantBombInvalidKey:
		return AuthError(apiName, 0)
	default:
		return UpstreamError(apiName, 0, fmt.Sprintf("status %d: %s", statusCode, message))
	}
}

func (g *GiantBomb) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	apiKey, err := g.apiKey()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api_key", apiKey)
	q.Set("format", "json")
	q.Set("query", title)
	q.Set("resources", "game")
	q.Set("limit", strconv.Itoa(SearchResultCap))

	var response gbEnvelope[[]gbGame]
	err = getJSON(ctx, g.client, g.info.Name, giantBombEndpoint+"/search/?"+q.Encode(), nil, &response)
	if err != nil {
		return nil, err
	}
	if err := checkGBEnvelope(g.info.Name, response.StatusCode, response.Error); err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(response.Results))
	for _, game := range response.Results {
		stub, err := media.NewStub(media.TypeGame, g.meta(game))
		if err != nil {
			return nil, UpstreamError(g.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

func (g *GiantBomb) GetByID(ctx context.Context, id string) (media.Record, error) {
	apiKey, err := g.apiKey()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api_key", apiKey)
	q.Set("format", "json")

	var response gbEnvelope[gbGame]
	err = getJSON(ctx, g.client, g.info.Name, fmt.Sprintf("%s/game/%s/?%s", giantBombEndpoint, id, q.Encode()), nil, &response)
	if err != nil {
		return nil, err
	}
	if err := checkGBEnvelope(g.info.Name, response.StatusCode, response.Error); err != nil {
		return nil, err
	}

	game := response.Results
	if game.GUID == "" {
		return nil, NotFoundError(g.info.Name, fmt.Sprintf("no game with id %q", id))
	}

	return &media.Game{
		Meta:        g.meta(game),
		Plot:        game.Deck,
		Genres:      gbNames(game.Genres),
		Platforms:   gbNames(game.Platforms),
		Developers:  gbNames(game.Developers),
		Publishers:  gbNames(game.Publishers),
		Image:       game.Image.SuperURL,
		Released:    game.OriginalReleaseDate != "",
		ReleaseDate: dateformat.Format(game.OriginalReleaseDate, mo.None[string]()).OrElse(""),
	}, nil
}

func (g *GiantBomb) meta(game gbGame) media.Meta {
	year := media.YearUnknown
	switch {
	case len(game.OriginalReleaseDate) >= 4:
		year = game.OriginalReleaseDate[:4]
	case game.ExpectedReleaseYear > 0:
		year = strconv.Itoa(game.ExpectedReleaseYear)
	}

	return media.Meta{
		Title:        game.Name,
		EnglishTitle: game.Name,
		Year:         year,
		DataSource:   g.info.Name,
		URL:          game.SiteDetailURL,
		ID:           game.GUID,
	}
}
