package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/spf13/viper"
)

const anilistEndpoint = "https://graphql.anilist.co"

const anilistMediaFields = `
id
type
format
status
title {
	romaji
	english
}
description(asHtml: false)
startDate { year month day }
endDate { year month day }
episodes
chapters
volumes
duration
coverImage { extraLarge }
genres
averageScore
siteUrl
studios(isMain: true) {
	nodes { name }
}
staff(perPage: 4) {
	nodes { name { full } }
}
`

// AniList adapts the AniList GraphQL API. One upstream covers both the anime
// and manga catalogs, classified by the format field of each hit.
type AniList struct {
	info   Info
	client *http.Client
}

func NewAniList(client *http.Client) *AniList {
	return &AniList{
		info: Info{
			Name:             "AniListAPI",
			Description:      "Anime and manga metadata from AniList",
			URL:              "https://anilist.co/",
			Types:            []media.Type{media.TypeSeries, media.TypeMovie, media.TypeComicManga},
			DisabledTypesKey: key.AniListDisabledTypes,
		},
		client: client,
	}
}

func (a *AniList) Info() Info { return a.info }

type anilistMedia struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Format string `json:"format"`
	Status string `json:"status"`
	Title  struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
	} `json:"title"`
	Description string      `json:"description"`
	StartDate   anilistDate `json:"startDate"`
	EndDate     anilistDate `json:"endDate"`
	Episodes    int         `json:"episodes"`
	Chapters    int         `json:"chapters"`
	Volumes     int         `json:"volumes"`
	Duration    int         `json:"duration"`
	CoverImage  struct {
		ExtraLarge string `json:"extraLarge"`
	} `json:"coverImage"`
	Genres       []string `json:"genres"`
	AverageScore float64  `json:"averageScore"`
	SiteURL      string   `json:"siteUrl"`
	Studios      struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"studios"`
	Staff struct {
		Nodes []struct {
			Name struct {
				Full string `json:"full"`
			} `json:"name"`
		} `json:"nodes"`
	} `json:"staff"`
}

type anilistDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d anilistDate) String() string {
	if d.Year == 0 {
		return ""
	}
	if d.Month == 0 || d.Day == 0 {
		return strconv.Itoa(d.Year)
	}
	return normalizeDate(fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day))
}

// gql executes a GraphQL query against AniList and decodes the named payload field.
func (a *AniList) gql(ctx context.Context, query string, variables map[string]any, v any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return TransportError(a.info.Name, err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")

	var response struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	err = postJSON(ctx, a.client, a.info.Name, anilistEndpoint, header, body, &response)
	if err != nil {
		return err
	}

	if len(response.Errors) > 0 {
		return UpstreamError(a.info.Name, 0, response.Errors[0].Message)
	}

	if err := json.Unmarshal(response.Data, v); err != nil {
		return UpstreamError(a.info.Name, 0, fmt.Sprintf("malformed graphql payload: %v", err))
	}
	return nil
}

func (a *AniList) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	query := fmt.Sprintf(`
query ($search: String, $perPage: Int, $isAdult: Boolean) {
	Page(perPage: $perPage) {
		media(search: $search, isAdult: $isAdult) {
			%s
		}
	}
}`, anilistMediaFields)

	variables := map[string]any{
		"search":  title,
		"perPage": SearchResultCap,
		"isAdult": false,
	}
	if !viper.GetBool(key.SearchSfwFilter) {
		delete(variables, "isAdult")
	}

	var data struct {
		Page struct {
			Media []anilistMedia `json:"media"`
		} `json:"Page"`
	}
	if err := a.gql(ctx, query, variables, &data); err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(data.Page.Media))
	for _, hit := range data.Page.Media {
		mediaType := anilistMediaType(hit)
		if !a.info.TypeEnabled(mediaType) {
			continue
		}

		stub, err := media.NewStub(mediaType, a.meta(hit))
		if err != nil {
			return nil, UpstreamError(a.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

func (a *AniList) GetByID(ctx context.Context, id string) (media.Record, error) {
	mediaID, err := strconv.Atoi(id)
	if err != nil {
		return nil, NotFoundError(a.info.Name, fmt.Sprintf("malformed media id %q", id))
	}

	query := fmt.Sprintf(`
query ($id: Int) {
	Media(id: $id) {
		%s
	}
}`, anilistMediaFields)

	var data struct {
		Media *anilistMedia `json:"Media"`
	}
	if err := a.gql(ctx, query, map[string]any{"id": mediaID}, &data); err != nil {
		return nil, err
	}
	if data.Media == nil {
		return nil, NotFoundError(a.info.Name, fmt.Sprintf("no media with id %q", id))
	}

	hit := *data.Media
	meta := a.meta(hit)
	plot := stripHTML(strings.ReplaceAll(hit.Description, "<br>", "\n"))
	released := hit.Status != "NOT_YET_RELEASED"

	staff := make([]string, 0, len(hit.Staff.Nodes))
	for _, node := range hit.Staff.Nodes {
		staff = append(staff, node.Name.Full)
	}

	studios := make([]string, 0, len(hit.Studios.Nodes))
	for _, node := range hit.Studios.Nodes {
		studios = append(studios, node.Name)
	}

	duration := ""
	if hit.Duration > 0 {
		duration = fmt.Sprintf("%d min", hit.Duration)
	}

	switch anilistMediaType(hit) {
	case media.TypeComicManga:
		return &media.ComicManga{
			Meta:          meta,
			Plot:          plot,
			Genres:        hit.Genres,
			Authors:       staff,
			Chapters:      hit.Chapters,
			Volumes:       hit.Volumes,
			Status:        strings.ToLower(hit.Status),
			OnlineRating:  hit.AverageScore / 10,
			Image:         hit.CoverImage.ExtraLarge,
			Released:      released,
			PublishedFrom: hit.StartDate.String(),
			PublishedTo:   hit.EndDate.String(),
		}, nil
	case media.TypeMovie:
		return &media.Movie{
			Meta:         meta,
			Plot:         plot,
			Genres:       hit.Genres,
			Studio:       studios,
			Duration:     duration,
			OnlineRating: hit.AverageScore / 10,
			Image:        hit.CoverImage.ExtraLarge,
			Released:     released,
			Premiere:     hit.StartDate.String(),
		}, nil
	default:
		return &media.Series{
			Meta:         meta,
			Plot:         plot,
			Genres:       hit.Genres,
			Studio:       studios,
			Episodes:     hit.Episodes,
			Duration:     duration,
			OnlineRating: hit.AverageScore / 10,
			Image:        hit.CoverImage.ExtraLarge,
			Released:     released,
			Airing:       hit.Status == "RELEASING",
			AiredFrom:    hit.StartDate.String(),
			AiredTo:      hit.EndDate.String(),
		}, nil
	}
}

func (a *AniList) meta(hit anilistMedia) media.Meta {
	year := media.YearUnknown
	switch {
	case hit.StartDate.Year > 0:
		year = strconv.Itoa(hit.StartDate.Year)
	case hit.Status == "NOT_YET_RELEASED":
		year = media.YearTBA
	}

	return media.Meta{
		SubType:      strings.ToLower(hit.Format),
		Title:        hit.Title.Romaji,
		EnglishTitle: hit.Title.English,
		Year:         year,
		DataSource:   a.info.Name,
		URL:          hit.SiteURL,
		ID:           strconv.Itoa(hit.ID),
	}
}

func anilistMediaType(hit anilistMedia) media.Type {
	if hit.Type == "MANGA" {
		return media.TypeComicManga
	}
	if hit.Format == "MOVIE" {
		return media.TypeMovie
	}
	return media.TypeSeries
}
