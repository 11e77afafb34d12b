package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/mediadex-cli/mediadex/auth"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
)

const mobyGamesEndpoint = "https://api.mobygames.com/v1"

// MobyGames adapts the MobyGames REST API. The free tier enforces one request
// per second, so calls are spaced out locally instead of risking 429 churn.
type MobyGames struct {
	info   Info
	client *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

func NewMobyGames(client *http.Client) *MobyGames {
	return &MobyGames{
		info: Info{
			Name:        "MobyGamesAPI",
			Description: "Video game metadata from MobyGames",
			URL:         "https://www.mobygames.com/",
			Types:       []media.Type{media.TypeGame},
		},
		client: client,
	}
}

func (m *MobyGames) Info() Info { return m.info }

func (m *MobyGames) apiKey() (string, error) {
	k := auth.Get(m.info.Name, key.MobyGamesAPIKey)
	if k == "" {
		return "", ConfigError(m.info.Name, "api key not configured")
	}
	return k, nil
}

// throttle spaces requests one second apart per the free tier's rate contract.
// A cancelled context aborts the wait instead of blocking out the pause.
func (m *MobyGames) throttle(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if wait := time.Second - time.Since(m.lastCall); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return TransportError(m.info.Name, ctx.Err())
		}
	}
	m.lastCall = time.Now()
	return nil
}

type mobyGame struct {
	GameID      int     `json:"game_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MobyScore   float64 `json:"moby_score"`
	MobyURL     string  `json:"moby_url"`
	SampleCover struct {
		Image string `json:"image"`
	} `json:"sample_cover"`
	Platforms []mobyPlatform `json:"platforms"`
	Genres    []mobyGenre    `json:"genres"`
}

type mobyPlatform struct {
	PlatformName     string `json:"platform_name"`
	FirstReleaseDate string `json:"first_release_date"`
}

type mobyGenre struct {
	GenreName string `json:"genre_name"`
}

func (m *MobyGames) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	apiKey, err := m.apiKey()
	if err != nil {
		return nil, err
	}

	if err := m.throttle(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("title", title)
	q.Set("limit", strconv.Itoa(SearchResultCap))
	q.Set("api_key", apiKey)

	var response struct {
		Games []mobyGame `json:"games"`
	}
	err = getJSON(ctx, m.client, m.info.Name, mobyGamesEndpoint+"/games?"+q.Encode(), nil, &response)
	if err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(response.Games))
	for _, game := range response.Games {
		stub, err := media.NewStub(media.TypeGame, m.meta(game))
		if err != nil {
			return nil, UpstreamError(m.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

func (m *MobyGames) GetByID(ctx context.Context, id string) (media.Record, error) {
	apiKey, err := m.apiKey()
	if err != nil {
		return nil, err
	}

	if err := m.throttle(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api_key", apiKey)

	var game mobyGame
	err = getJSON(ctx, m.client, m.info.Name, fmt.Sprintf("%s/games/%s?%s", mobyGamesEndpoint, id, q.Encode()), nil, &game)
	if err != nil {
		return nil, err
	}

	releaseDate := m.earliestRelease(game)

	return &media.Game{
		Meta: m.meta(game),
		Plot: stripHTML(game.Description),
		Genres: lo.Map(game.Genres, func(g mobyGenre, _ int) string {
			return g.GenreName
		}),
		Platforms: lo.Map(game.Platforms, func(p mobyPlatform, _ int) string {
			return p.PlatformName
		}),
		OnlineRating: game.MobyScore,
		Image:        game.SampleCover.Image,
		Released:     releaseDate != "",
		ReleaseDate:  releaseDate,
	}, nil
}

func (m *MobyGames) meta(game mobyGame) media.Meta {
	year := media.YearUnknown
	if release := m.earliestRelease(game); len(release) >= 4 {
		year = release[:4]
	}

	return media.Meta{
		Title:        game.Title,
		EnglishTitle: game.Title,
		Year:         year,
		DataSource:   m.info.Name,
		URL:          game.MobyURL,
		ID:           strconv.Itoa(game.GameID),
	}
}

// earliestRelease picks the oldest per-platform release date, matching how
// MobyGames itself displays a game's year.
func (m *MobyGames) earliestRelease(game mobyGame) string {
	earliest := ""
	for _, platform := range game.Platforms {
		date := platform.FirstReleaseDate
		if date == "" {
			continue
		}
		if earliest == "" || date < earliest {
			earliest = date
		}
	}
	return earliest
}
