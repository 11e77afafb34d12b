package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mediadex-cli/mediadex/dateformat"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/network"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const steamStoreEndpoint = "https://store.steampowered.com/api"

// Steam adapts the undocumented storefront API. The storefront rejects
// non-browser TLS fingerprints, so this adapter defaults to the
// browser-emulating client instead of the plain shared one.
type Steam struct {
	info   Info
	client *http.Client
}

func NewSteam(client *http.Client) *Steam {
	if client == nil {
		client = network.BrowserClient
	}
	return &Steam{
		info: Info{
			Name:        "SteamAPI",
			Description: "PC game metadata from the Steam storefront",
			URL:         "https://store.steampowered.com/",
			Types:       []media.Type{media.TypeGame},
		},
		client: client,
	}
}

func (s *Steam) Info() Info { return s.info }

func (s *Steam) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	q := url.Values{}
	q.Set("term", title)
	q.Set("cc", "us")
	q.Set("l", "en")

	var response struct {
		Items []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}
	err := getJSON(ctx, s.client, s.info.Name, steamStoreEndpoint+"/storesearch/?"+q.Encode(), steamHeader(), &response)
	if err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(response.Items))
	for _, hit := range response.Items {
		if len(records) == SearchResultCap {
			break
		}

		id := strconv.Itoa(hit.ID)
		stub, err := media.NewStub(media.TypeGame, media.Meta{
			Title:        hit.Name,
			EnglishTitle: hit.Name,
			Year:         media.YearUnknown,
			DataSource:   s.info.Name,
			URL:          "https://store.steampowered.com/app/" + id,
			ID:           id,
		})
		if err != nil {
			return nil, UpstreamError(s.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

type steamAppDetails struct {
	Success bool `json:"success"`
	Data    struct {
		Name             string   `json:"name"`
		ShortDescription string   `json:"short_description"`
		HeaderImage      string   `json:"header_image"`
		Developers       []string `json:"developers"`
		Publishers       []string `json:"publishers"`
		Platforms        struct {
			Windows bool `json:"windows"`
			Mac     bool `json:"mac"`
			Linux   bool `json:"linux"`
		} `json:"platforms"`
		Genres      []steamGenre `json:"genres"`
		ReleaseDate struct {
			ComingSoon bool   `json:"coming_soon"`
			Date       string `json:"date"`
		} `json:"release_date"`
		Metacritic struct {
			Score float64 `json:"score"`
		} `json:"metacritic"`
	} `json:"data"`
}

type steamGenre struct {
	Description string `json:"description"`
}

func (s *Steam) GetByID(ctx context.Context, id string) (media.Record, error) {
	q := url.Values{}
	q.Set("appids", id)
	q.Set("cc", "us")
	q.Set("l", "en")

	var response map[string]steamAppDetails
	err := getJSON(ctx, s.client, s.info.Name, steamStoreEndpoint+"/appdetails?"+q.Encode(), steamHeader(), &response)
	if err != nil {
		return nil, err
	}

	details, ok := response[id]
	if !ok || !details.Success {
		return nil, UpstreamError(s.info.Name, 0, fmt.Sprintf("storefront reported no data for app %q", id))
	}

	app := details.Data

	year := media.YearUnknown
	releaseDate := dateformat.Format(app.ReleaseDate.Date, mo.None[string]())
	if app.ReleaseDate.ComingSoon {
		year = media.YearTBA
	} else if parsed, ok := releaseDate.Get(); ok && len(parsed) >= 4 {
		year = parsed[:4]
	}

	var platforms []string
	if app.Platforms.Windows {
		platforms = append(platforms, "Windows")
	}
	if app.Platforms.Mac {
		platforms = append(platforms, "macOS")
	}
	if app.Platforms.Linux {
		platforms = append(platforms, "Linux")
	}

	return &media.Game{
		Meta: media.Meta{
			Title:        app.Name,
			EnglishTitle: app.Name,
			Year:         year,
			DataSource:   s.info.Name,
			URL:          "https://store.steampowered.com/app/" + id,
			ID:           id,
		},
		Plot: app.ShortDescription,
		Genres: lo.Map(app.Genres, func(g steamGenre, _ int) string {
			return g.Description
		}),
		Platforms:    platforms,
		Developers:   app.Developers,
		Publishers:   app.Publishers,
		OnlineRating: app.Metacritic.Score,
		Image:        app.HeaderImage,
		Released:     !app.ReleaseDate.ComingSoon,
		ReleaseDate:  releaseDate.OrElse(""),
	}, nil
}

// steamHeader mimics a browser request since the storefront API is unofficial.
func steamHeader() http.Header {
	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("Accept-Language", "en-US,en;q=0.9")
	return header
}
