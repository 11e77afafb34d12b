package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediadex-cli/mediadex/auth"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
)

const comicVineEndpoint = "https://comicvine.gamespot.com/api"

// comicVineVolumePrefix is the resource type prefix Comic Vine requires in
// detail URLs; volume ids from search come bare.
const comicVineVolumePrefix = "4050-"

// ComicVine adapts the Comic Vine API. It shares the envelope conventions of
// its sibling Giant Bomb API, auth failures included.
type ComicVine struct {
	info   Info
	client *http.Client
}

func NewComicVine(client *http.Client) *ComicVine {
	return &ComicVine{
		info: Info{
			Name:        "ComicVineAPI",
			Description: "Western comic volume metadata from Comic Vine",
			URL:         "https://comicvine.gamespot.com/",
			Types:       []media.Type{media.TypeComicManga},
		},
		client: client,
	}
}

func (c *ComicVine) Info() Info { return c.info }

func (c *ComicVine) apiKey() (string, error) {
	k := auth.Get(c.info.Name, key.ComicVineAPIKey)
	if k == "" {
		return "", ConfigError(c.info.Name, "api key not configured")
	}
	return k, nil
}

type cvVolume struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Deck          string `json:"deck"`
	Description   string `json:"description"`
	StartYear     string `json:"start_year"`
	CountOfIssues int    `json:"count_of_issues"`
	SiteDetailURL string `json:"site_detail_url"`
	Image         struct {
		SuperURL string `json:"super_url"`
	} `json:"image"`
	Publisher struct {
		Name string `json:"name"`
	} `json:"publisher"`
	PersonCredits []struct {
		Name string `json:"name"`
	} `json:"person_credits"`
}

func (c *ComicVine) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	apiKey, err := c.apiKey()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api_key", apiKey)
	q.Set("format", "json")
	q.Set("query", title)
	q.Set("resources", "volume")
	q.Set("limit", strconv.Itoa(SearchResultCap))

	var response gbEnvelope[[]cvVolume]
	err = getJSON(ctx, c.client, c.info.Name, comicVineEndpoint+"/search/?"+q.Encode(), nil, &response)
	if err != nil {
		return nil, err
	}
	if err := checkGBEnvelope(c.info.Name, response.StatusCode, response.Error); err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(response.Results))
	for _, volume := range response.Results {
		stub, err := media.NewStub(media.TypeComicManga, c.meta(volume))
		if err != nil {
			return nil, UpstreamError(c.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

func (c *ComicVine) GetByID(ctx context.Context, id string) (media.Record, error) {
	apiKey, err := c.apiKey()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api_key", apiKey)
	q.Set("format", "json")

	resource := id
	if !strings.HasPrefix(resource, comicVineVolumePrefix) {
		resource = comicVineVolumePrefix + resource
	}

	var response gbEnvelope[cvVolume]
	err = getJSON(ctx, c.client, c.info.Name, fmt.Sprintf("%s/volume/%s/?%s", comicVineEndpoint, resource, q.Encode()), nil, &response)
	if err != nil {
		return nil, err
	}
	if err := checkGBEnvelope(c.info.Name, response.StatusCode, response.Error); err != nil {
		return nil, err
	}

	volume := response.Results
	if volume.ID == 0 {
		return nil, NotFoundError(c.info.Name, fmt.Sprintf("no volume with id %q", id))
	}

	plot := volume.Deck
	if plot == "" {
		plot = stripHTML(volume.Description)
	}

	authors := make([]string, 0, len(volume.PersonCredits))
	for _, person := range volume.PersonCredits {
		authors = append(authors, person.Name)
	}

	return &media.ComicManga{
		Meta:          c.meta(volume),
		Plot:          plot,
		Authors:       authors,
		Chapters:      volume.CountOfIssues,
		Image:         volume.Image.SuperURL,
		Released:      volume.StartYear != "",
		PublishedFrom: volume.StartYear,
	}, nil
}

func (c *ComicVine) meta(volume cvVolume) media.Meta {
	year := volume.StartYear
	if year == "" {
		year = media.YearUnknown
	}

	return media.Meta{
		SubType:      "comic",
		Title:        volume.Name,
		EnglishTitle: volume.Name,
		Year:         year,
		DataSource:   c.info.Name,
		URL:          volume.SiteDetailURL,
		ID:           strconv.Itoa(volume.ID),
	}
}
