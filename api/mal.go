package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediadex-cli/mediadex/dateformat"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const jikanEndpoint = "https://api.jikan.moe/v4"

// MAL adapts MyAnimeList through the keyless Jikan REST mirror.
// Search results are cached on disk to respect Jikan's courtesy rate limits.
type MAL struct {
	info   Info
	client *http.Client
}

func NewMAL(client *http.Client) *MAL {
	return &MAL{
		info: Info{
			Name:        "MALAPI",
			Description: "Anime metadata from MyAnimeList via the Jikan mirror",
			URL:         "https://myanimelist.net/",
			Types:       []media.Type{media.TypeSeries, media.TypeMovie},
		},
		client: client,
	}
}

func (m *MAL) Info() Info { return m.info }

type jikanAnime struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Images struct {
		Jpg struct {
			LargeImageURL string `json:"large_image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Title        string `json:"title"`
	TitleEnglish string `json:"title_english"`
	Type         string `json:"type"`
	Episodes     int    `json:"episodes"`
	Status       string `json:"status"`
	Airing       bool   `json:"airing"`
	Aired        struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"aired"`
	Duration  string       `json:"duration"`
	Score     float64      `json:"score"`
	Synopsis  string       `json:"synopsis"`
	Year      int          `json:"year"`
	Studios   []jikanNamed `json:"studios"`
	Genres    []jikanNamed `json:"genres"`
	Authors   []jikanNamed `json:"authors"`
	Streaming []jikanNamed `json:"streaming"`
}

type jikanNamed struct {
	Name string `json:"name"`
}

func jikanNames(entries []jikanNamed) []string {
	return lo.Map(entries, func(e jikanNamed, _ int) string {
		return e.Name
	})
}

func (m *MAL) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	return cachedSearch(m.info.Name, title, func() ([]media.Record, error) {
		q := url.Values{}
		q.Set("q", title)
		q.Set("limit", strconv.Itoa(SearchResultCap))
		if viper.GetBool(key.SearchSfwFilter) {
			q.Set("sfw", "true")
		}

		var response struct {
			Data []jikanAnime `json:"data"`
		}
		err := getJSON(ctx, m.client, m.info.Name, jikanEndpoint+"/anime?"+q.Encode(), nil, &response)
		if err != nil {
			return nil, err
		}

		records := make([]media.Record, 0, len(response.Data))
		for _, hit := range response.Data {
			mediaType := jikanMediaType(hit.Type)
			if !m.info.TypeEnabled(mediaType) {
				continue
			}

			stub, err := media.NewStub(mediaType, m.meta(hit))
			if err != nil {
				return nil, UpstreamError(m.info.Name, 0, err.Error())
			}
			records = append(records, stub)
		}

		return records, nil
	})
}

func (m *MAL) GetByID(ctx context.Context, id string) (media.Record, error) {
	var response struct {
		Data jikanAnime `json:"data"`
	}
	err := getJSON(ctx, m.client, m.info.Name, fmt.Sprintf("%s/anime/%s/full", jikanEndpoint, id), nil, &response)
	if err != nil {
		return nil, err
	}

	anime := response.Data
	meta := m.meta(anime)

	genres := jikanNames(anime.Genres)
	studios := jikanNames(anime.Studios)
	streaming := jikanNames(anime.Streaming)

	if jikanMediaType(anime.Type) == media.TypeMovie {
		return &media.Movie{
			Meta:              meta,
			Plot:              anime.Synopsis,
			Genres:            genres,
			Studio:            studios,
			Duration:          anime.Duration,
			OnlineRating:      anime.Score,
			Image:             anime.Images.Jpg.LargeImageURL,
			Released:          anime.Status != "Not yet aired",
			StreamingServices: streaming,
			Premiere:          normalizeDate(anime.Aired.From),
		}, nil
	}

	return &media.Series{
		Meta:              meta,
		Plot:              anime.Synopsis,
		Genres:            genres,
		Studio:            studios,
		Episodes:          anime.Episodes,
		Duration:          anime.Duration,
		OnlineRating:      anime.Score,
		Image:             anime.Images.Jpg.LargeImageURL,
		Released:          anime.Status != "Not yet aired",
		StreamingServices: streaming,
		Airing:            anime.Airing,
		AiredFrom:         normalizeDate(anime.Aired.From),
		AiredTo:           normalizeDate(anime.Aired.To),
	}, nil
}

func (m *MAL) meta(anime jikanAnime) media.Meta {
	year := media.YearUnknown
	switch {
	case anime.Year > 0:
		year = strconv.Itoa(anime.Year)
	case anime.Status == "Not yet aired":
		year = media.YearTBA
	}

	return media.Meta{
		SubType:      strings.ToLower(anime.Type),
		Title:        anime.Title,
		EnglishTitle: anime.TitleEnglish,
		Year:         year,
		DataSource:   m.info.Name,
		URL:          anime.URL,
		ID:           strconv.Itoa(anime.MalID),
	}
}

// normalizeDate renders an upstream timestamp in the configured date format.
func normalizeDate(raw string) string {
	return dateformat.Format(raw, mo.None[string]()).OrElse("")
}

func jikanMediaType(jikanType string) media.Type {
	if strings.EqualFold(jikanType, "movie") {
		return media.TypeMovie
	}
	return media.TypeSeries
}
