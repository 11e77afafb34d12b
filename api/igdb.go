package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mediadex-cli/mediadex/auth"
	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	igdbEndpoint       = "https://api.igdb.com/v4"
	twitchOAuthURL     = "https://id.twitch.tv/oauth2/token"
	igdbEroticaThemeID = 42
)

// igdbToken is the persisted form of a Twitch client-credentials grant.
type igdbToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (t *igdbToken) valid() bool {
	return t != nil && t.AccessToken != "" && time.Now().Before(t.ExpiresAt)
}

// IGDB adapts the IGDB v4 API. Access goes through Twitch's OAuth client
// credentials flow; the granted token is cached on disk and refreshed at most
// once per call when the upstream rejects it early.
type IGDB struct {
	info   Info
	client *http.Client
	token  *gache.Cache[*igdbToken]
}

func NewIGDB(client *http.Client) *IGDB {
	return &IGDB{
		info: Info{
			Name:        "IGDBAPI",
			Description: "Video game metadata from IGDB (Twitch)",
			URL:         "https://www.igdb.com/",
			Types:       []media.Type{media.TypeGame},
		},
		client: client,
		token: gache.New[*igdbToken](
			&gache.Options{
				Path:       filepath.Join(where.Cache(), "igdb_token.json"),
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

func (i *IGDB) Info() Info { return i.info }

func (i *IGDB) credentials() (clientID, secret string, err error) {
	clientID = auth.Get(i.info.Name, key.IGDBClientID)
	secret = auth.Get(i.info.Name, key.IGDBSecret)
	if clientID == "" || secret == "" {
		return "", "", ConfigError(i.info.Name, "twitch client id and secret not configured")
	}
	return clientID, secret, nil
}

// accessToken returns a cached token, requesting a fresh grant when the cache
// is empty, expired, or force is set.
func (i *IGDB) accessToken(ctx context.Context, force bool) (string, error) {
	if !force {
		if cached, _, err := i.token.Get(); err == nil && cached.valid() {
			return cached.AccessToken, nil
		}
	}

	clientID, secret, err := i.credentials()
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("client_secret", secret)
	q.Set("grant_type", "client_credentials")

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	err = postJSON(ctx, i.client, i.info.Name, twitchOAuthURL+"?"+q.Encode(), nil, nil, &grant)
	if err != nil {
		return "", err
	}

	token := &igdbToken{
		AccessToken: grant.AccessToken,
		// Refresh a minute early so a token never expires mid-request.
		ExpiresAt: time.Now().Add(time.Duration(grant.ExpiresIn)*time.Second - time.Minute),
	}
	if err := i.token.Set(token); err != nil {
		log.Warnf("failed to persist igdb token: %v", err)
	}

	return token.AccessToken, nil
}

// query posts an Apicalypse body to an IGDB resource, refreshing the token and
// retrying exactly once if the cached one has been revoked upstream.
func (i *IGDB) query(ctx context.Context, resource, body string, v any) error {
	clientID, _, err := i.credentials()
	if err != nil {
		return err
	}

	tryOnce := func(force bool) error {
		token, err := i.accessToken(ctx, force)
		if err != nil {
			return err
		}

		header := http.Header{}
		header.Set("Client-ID", clientID)
		header.Set("Authorization", "Bearer "+token)
		header.Set("Accept", "application/json")

		return postJSON(ctx, i.client, i.info.Name, igdbEndpoint+"/"+resource, header, []byte(body), v)
	}

	err = tryOnce(false)
	if IsAuth(err) {
		log.Infof("%s: cached token rejected, refreshing", i.info.Name)
		return tryOnce(true)
	}
	return err
}

type igdbGame struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Summary          string  `json:"summary"`
	URL              string  `json:"url"`
	FirstReleaseDate int64   `json:"first_release_date"`
	TotalRating      float64 `json:"total_rating"`
	Cover            struct {
		URL string `json:"url"`
	} `json:"cover"`
	Genres            []gbNamed `json:"genres"`
	Platforms         []gbNamed `json:"platforms"`
	InvolvedCompanies []struct {
		Developer bool `json:"developer"`
		Publisher bool `json:"publisher"`
		Company   struct {
			Name string `json:"name"`
		} `json:"company"`
	} `json:"involved_companies"`
}

const igdbFields = "fields name, summary, url, first_release_date, total_rating, cover.url, " +
	"genres.name, platforms.name, " +
	"involved_companies.developer, involved_companies.publisher, involved_companies.company.name;"

func (i *IGDB) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	var body strings.Builder
	fmt.Fprintf(&body, "search %q; ", title)
	body.WriteString(igdbFields)
	fmt.Fprintf(&body, " limit %d;", SearchResultCap)
	if viper.GetBool(key.SearchSfwFilter) {
		fmt.Fprintf(&body, " where themes != (%d);", igdbEroticaThemeID)
	}

	var games []igdbGame
	if err := i.query(ctx, "games", body.String(), &games); err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(games))
	for _, game := range games {
		stub, err := media.NewStub(media.TypeGame, i.meta(game))
		if err != nil {
			return nil, UpstreamError(i.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

func (i *IGDB) GetByID(ctx context.Context, id string) (media.Record, error) {
	gameID, err := strconv.Atoi(id)
	if err != nil {
		return nil, NotFoundError(i.info.Name, fmt.Sprintf("malformed game id %q", id))
	}

	body := fmt.Sprintf("%s where id = %d;", igdbFields, gameID)

	var games []igdbGame
	if err := i.query(ctx, "games", body, &games); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, NotFoundError(i.info.Name, fmt.Sprintf("no game with id %q", id))
	}

	game := games[0]

	var developers, publishers []string
	for _, involved := range game.InvolvedCompanies {
		if involved.Developer {
			developers = append(developers, involved.Company.Name)
		}
		if involved.Publisher {
			publishers = append(publishers, involved.Company.Name)
		}
	}

	released := game.FirstReleaseDate > 0 && time.Unix(game.FirstReleaseDate, 0).Before(time.Now())

	return &media.Game{
		Meta: i.meta(game),
		Plot: game.Summary,
		Genres: lo.Map(game.Genres, func(g gbNamed, _ int) string {
			return g.Name
		}),
		Platforms: lo.Map(game.Platforms, func(p gbNamed, _ int) string {
			return p.Name
		}),
		Developers:   developers,
		Publishers:   publishers,
		OnlineRating: game.TotalRating,
		Image:        igdbCover(game.Cover.URL),
		Released:     released,
		ReleaseDate:  igdbDate(game.FirstReleaseDate),
	}, nil
}

func (i *IGDB) meta(game igdbGame) media.Meta {
	year := media.YearTBA
	if game.FirstReleaseDate > 0 {
		year = strconv.Itoa(time.Unix(game.FirstReleaseDate, 0).UTC().Year())
	}

	return media.Meta{
		Title:        game.Name,
		EnglishTitle: game.Name,
		Year:         year,
		DataSource:   i.info.Name,
		URL:          game.URL,
		ID:           strconv.Itoa(game.ID),
	}
}

func igdbDate(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return normalizeDate(time.Unix(unix, 0).UTC().Format("2006-01-02"))
}

// igdbCover upgrades the protocol-relative thumbnail URL IGDB returns to a
// full-size https one.
func igdbCover(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.Replace(raw, "t_thumb", "t_cover_big", 1)
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	return raw
}
