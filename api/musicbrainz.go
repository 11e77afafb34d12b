package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
)

const musicBrainzEndpoint = "https://musicbrainz.org/ws/2"

// MusicBrainz adapts the MusicBrainz release-group API. The service is keyless
// but requires a descriptive User-Agent and a strict one-request-per-second
// courtesy limit, so searches are cached on disk.
type MusicBrainz struct {
	info   Info
	client *http.Client
}

func NewMusicBrainz(client *http.Client) *MusicBrainz {
	return &MusicBrainz{
		info: Info{
			Name:        "MusicBrainzAPI",
			Description: "Album, EP and single metadata from MusicBrainz",
			URL:         "https://musicbrainz.org/",
			Types:       []media.Type{media.TypeMusicRelease},
		},
		client: client,
	}
}

func (m *MusicBrainz) Info() Info { return m.info }

type mbReleaseGroup struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	PrimaryType  string    `json:"primary-type"`
	FirstRelease string    `json:"first-release-date"`
	ArtistCredit []mbNamed `json:"artist-credit"`
	Genres       []mbNamed `json:"genres"`
	Rating       struct {
		Value float64 `json:"value"`
	} `json:"rating"`
}

type mbNamed struct {
	Name string `json:"name"`
}

func (m *MusicBrainz) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	return cachedSearch(m.info.Name, title, func() ([]media.Record, error) {
		q := url.Values{}
		q.Set("query", "releasegroup:"+title)
		q.Set("fmt", "json")
		q.Set("limit", strconv.Itoa(SearchResultCap))

		var response struct {
			ReleaseGroups []mbReleaseGroup `json:"release-groups"`
		}
		err := getJSON(ctx, m.client, m.info.Name, musicBrainzEndpoint+"/release-group?"+q.Encode(), nil, &response)
		if err != nil {
			return nil, err
		}

		records := make([]media.Record, 0, len(response.ReleaseGroups))
		for _, hit := range response.ReleaseGroups {
			stub, err := media.NewStub(media.TypeMusicRelease, m.meta(hit))
			if err != nil {
				return nil, UpstreamError(m.info.Name, 0, err.Error())
			}
			records = append(records, stub)
		}

		return records, nil
	})
}

func (m *MusicBrainz) GetByID(ctx context.Context, id string) (media.Record, error) {
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("inc", "artist-credits genres ratings")

	var group mbReleaseGroup
	err := getJSON(ctx, m.client, m.info.Name, musicBrainzEndpoint+"/release-group/"+id+"?"+q.Encode(), nil, &group)
	if err != nil {
		return nil, err
	}

	return &media.MusicRelease{
		Meta: m.meta(group),
		Genres: lo.Map(group.Genres, func(g mbNamed, _ int) string {
			return g.Name
		}),
		Artists: m.artists(group),
		Rating:  group.Rating.Value,
	}, nil
}

func (m *MusicBrainz) meta(group mbReleaseGroup) media.Meta {
	year := media.YearUnknown
	if len(group.FirstRelease) >= 4 {
		year = group.FirstRelease[:4]
	}

	title := group.Title
	if artists := m.artists(group); len(artists) > 0 {
		title = strings.Join(artists, ", ") + " - " + group.Title
	}

	return media.Meta{
		SubType:      strings.ToLower(group.PrimaryType),
		Title:        title,
		EnglishTitle: group.Title,
		Year:         year,
		DataSource:   m.info.Name,
		URL:          "https://musicbrainz.org/release-group/" + group.ID,
		ID:           group.ID,
	}
}

func (m *MusicBrainz) artists(group mbReleaseGroup) []string {
	return lo.Map(group.ArtistCredit, func(a mbNamed, _ int) string {
		return a.Name
	})
}
