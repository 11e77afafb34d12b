package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
)

const bggEndpoint = "https://boardgamegeek.com/xmlapi2"

// BoardGameGeek adapts the BGG XML API 2. BGG has no JSON surface; responses
// are decoded from XML.
type BoardGameGeek struct {
	info   Info
	client *http.Client
}

func NewBoardGameGeek(client *http.Client) *BoardGameGeek {
	return &BoardGameGeek{
		info: Info{
			Name:        "BoardGameGeekAPI",
			Description: "Tabletop game metadata from BoardGameGeek",
			URL:         "https://boardgamegeek.com/",
			Types:       []media.Type{media.TypeBoardGame},
		},
		client: client,
	}
}

func (b *BoardGameGeek) Info() Info { return b.info }

type bggSearchResult struct {
	Items []struct {
		ID   string `xml:"id,attr"`
		Name struct {
			Value string `xml:"value,attr"`
		} `xml:"name"`
		YearPublished struct {
			Value string `xml:"value,attr"`
		} `xml:"yearpublished"`
	} `xml:"item"`
}

func (b *BoardGameGeek) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	q := url.Values{}
	q.Set("query", title)
	q.Set("type", "boardgame")

	var result bggSearchResult
	err := getXML(ctx, b.client, b.info.Name, bggEndpoint+"/search?"+q.Encode(), nil, &result)
	if err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(result.Items))
	for _, item := range result.Items {
		if len(records) == SearchResultCap {
			break
		}

		year := item.YearPublished.Value
		if year == "" || year == "0" {
			year = media.YearUnknown
		}

		stub, err := media.NewStub(media.TypeBoardGame, media.Meta{
			Title:        item.Name.Value,
			EnglishTitle: item.Name.Value,
			Year:         year,
			DataSource:   b.info.Name,
			URL:          "https://boardgamegeek.com/boardgame/" + item.ID,
			ID:           item.ID,
		})
		if err != nil {
			return nil, UpstreamError(b.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

type bggThingResult struct {
	Items []struct {
		ID    string `xml:"id,attr"`
		Names []struct {
			Type  string `xml:"type,attr"`
			Value string `xml:"value,attr"`
		} `xml:"name"`
		Description   string `xml:"description"`
		Image         string `xml:"image"`
		YearPublished struct {
			Value string `xml:"value,attr"`
		} `xml:"yearpublished"`
		MinPlayers struct {
			Value int `xml:"value,attr"`
		} `xml:"minplayers"`
		MaxPlayers struct {
			Value int `xml:"value,attr"`
		} `xml:"maxplayers"`
		PlayingTime struct {
			Value string `xml:"value,attr"`
		} `xml:"playingtime"`
		Links      []bggLink `xml:"link"`
		Statistics struct {
			Ratings struct {
				Average struct {
					Value float64 `xml:"value,attr"`
				} `xml:"average"`
				AverageWeight struct {
					Value float64 `xml:"value,attr"`
				} `xml:"averageweight"`
			} `xml:"ratings"`
		} `xml:"statistics"`
	} `xml:"item"`
}

type bggLink struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

func (b *BoardGameGeek) GetByID(ctx context.Context, id string) (media.Record, error) {
	q := url.Values{}
	q.Set("id", id)
	q.Set("stats", "1")

	var result bggThingResult
	err := getXML(ctx, b.client, b.info.Name, bggEndpoint+"/thing?"+q.Encode(), nil, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Items) == 0 {
		return nil, NotFoundError(b.info.Name, fmt.Sprintf("no board game with id %q", id))
	}

	item := result.Items[0]

	title := ""
	for _, name := range item.Names {
		if name.Type == "primary" {
			title = name.Value
			break
		}
	}
	if title == "" && len(item.Names) > 0 {
		title = item.Names[0].Value
	}

	year := item.YearPublished.Value
	if year == "" || year == "0" {
		year = media.YearUnknown
	}

	playtime := ""
	if item.PlayingTime.Value != "" && item.PlayingTime.Value != "0" {
		playtime = item.PlayingTime.Value + " min"
	}

	genres := bggLinks(item.Links, "boardgamecategory")
	publishers := bggLinks(item.Links, "boardgamepublisher")

	return &media.BoardGame{
		Meta: media.Meta{
			Title:        title,
			EnglishTitle: title,
			Year:         year,
			DataSource:   b.info.Name,
			URL:          "https://boardgamegeek.com/boardgame/" + item.ID,
			ID:           item.ID,
		},
		Plot:             item.Description,
		Genres:           genres,
		Publishers:       publishers,
		Image:            item.Image,
		OnlineRating:     item.Statistics.Ratings.Average.Value,
		ComplexityRating: item.Statistics.Ratings.AverageWeight.Value,
		MinPlayers:       item.MinPlayers.Value,
		MaxPlayers:       item.MaxPlayers.Value,
		Playtime:         playtime,
		Released:         year != media.YearUnknown,
	}, nil
}

func bggLinks(links []bggLink, linkType string) []string {
	filtered := lo.Filter(links, func(l bggLink, _ int) bool {
		return l.Type == linkType
	})
	return lo.Map(filtered, func(l bggLink, _ int) string {
		return l.Value
	})
}
