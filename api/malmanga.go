package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/spf13/viper"
)

// MALManga adapts the manga catalog of MyAnimeList through the Jikan mirror.
// It is registered separately from the anime adapter so the two catalogs can
// be enabled independently.
type MALManga struct {
	info   Info
	client *http.Client
}

func NewMALManga(client *http.Client) *MALManga {
	return &MALManga{
		info: Info{
			Name:        "MALAPIManga",
			Description: "Manga, manhwa and novel metadata from MyAnimeList via the Jikan mirror",
			URL:         "https://myanimelist.net/",
			Types:       []media.Type{media.TypeComicManga},
		},
		client: client,
	}
}

func (m *MALManga) Info() Info { return m.info }

type jikanManga struct {
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
	Chapters     int    `json:"chapters"`
	Volumes      int    `json:"volumes"`
	Status       string `json:"status"`
	Published    struct {
		From string `json:"from"`
		To   string `json:"to"`
		Prop struct {
			From struct {
				Year int `json:"year"`
			} `json:"from"`
		} `json:"prop"`
	} `json:"published"`
	Score    float64      `json:"score"`
	Synopsis string       `json:"synopsis"`
	Authors  []jikanNamed `json:"authors"`
	Genres   []jikanNamed `json:"genres"`
}

func (m *MALManga) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	return cachedSearch(m.info.Name, title, func() ([]media.Record, error) {
		q := url.Values{}
		q.Set("q", title)
		q.Set("limit", strconv.Itoa(SearchResultCap))
		if viper.GetBool(key.SearchSfwFilter) {
			q.Set("sfw", "true")
		}

		var response struct {
			Data []jikanManga `json:"data"`
		}
		err := getJSON(ctx, m.client, m.info.Name, jikanEndpoint+"/manga?"+q.Encode(), nil, &response)
		if err != nil {
			return nil, err
		}

		records := make([]media.Record, 0, len(response.Data))
		for _, hit := range response.Data {
			stub, err := media.NewStub(media.TypeComicManga, m.meta(hit))
			if err != nil {
				return nil, UpstreamError(m.info.Name, 0, err.Error())
			}
			records = append(records, stub)
		}

		return records, nil
	})
}

func (m *MALManga) GetByID(ctx context.Context, id string) (media.Record, error) {
	var response struct {
		Data jikanManga `json:"data"`
	}
	err := getJSON(ctx, m.client, m.info.Name, fmt.Sprintf("%s/manga/%s/full", jikanEndpoint, id), nil, &response)
	if err != nil {
		return nil, err
	}

	manga := response.Data
	return &media.ComicManga{
		Meta:          m.meta(manga),
		Plot:          manga.Synopsis,
		Genres:        jikanNames(manga.Genres),
		Authors:       jikanNames(manga.Authors),
		Chapters:      manga.Chapters,
		Volumes:       manga.Volumes,
		Status:        manga.Status,
		OnlineRating:  manga.Score,
		Image:         manga.Images.Jpg.LargeImageURL,
		Released:      manga.Status != "Not yet published",
		PublishedFrom: normalizeDate(manga.Published.From),
		PublishedTo:   normalizeDate(manga.Published.To),
	}, nil
}

func (m *MALManga) meta(manga jikanManga) media.Meta {
	year := media.YearUnknown
	switch {
	case manga.Published.Prop.From.Year > 0:
		year = strconv.Itoa(manga.Published.Prop.From.Year)
	case manga.Status == "Not yet published":
		year = media.YearTBA
	}

	return media.Meta{
		SubType:      strings.ToLower(manga.Type),
		Title:        manga.Title,
		EnglishTitle: manga.TitleEnglish,
		Year:         year,
		DataSource:   m.info.Name,
		URL:          manga.URL,
		ID:           strconv.Itoa(manga.MalID),
	}
}
