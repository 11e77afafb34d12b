package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mediadex-cli/mediadex/dateformat"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Wikipedia adapts the MediaWiki action API of the configured language edition.
type Wikipedia struct {
	info   Info
	client *http.Client
}

func NewWikipedia(client *http.Client) *Wikipedia {
	return &Wikipedia{
		info: Info{
			Name:        "WikipediaAPI",
			Description: "Encyclopedia article summaries from Wikipedia",
			URL:         "https://www.wikipedia.org/",
			Types:       []media.Type{media.TypeWiki},
		},
		client: client,
	}
}

func (w *Wikipedia) Info() Info { return w.info }

func (w *Wikipedia) endpoint() string {
	lang := viper.GetString(key.WikipediaLanguage)
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
}

func (w *Wikipedia) articleURL(pageID int) string {
	lang := viper.GetString(key.WikipediaLanguage)
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf("https://%s.wikipedia.org/?curid=%d", lang, pageID)
}

func (w *Wikipedia) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	return cachedSearch(w.info.Name, title, func() ([]media.Record, error) {
		q := url.Values{}
		q.Set("action", "query")
		q.Set("list", "search")
		q.Set("srsearch", title)
		q.Set("srlimit", fmt.Sprint(SearchResultCap))
		q.Set("format", "json")

		var response struct {
			Query struct {
				Search []struct {
					Title     string `json:"title"`
					PageID    int    `json:"pageid"`
					Timestamp string `json:"timestamp"`
				} `json:"search"`
			} `json:"query"`
		}
		err := getJSON(ctx, w.client, w.info.Name, w.endpoint()+"?"+q.Encode(), nil, &response)
		if err != nil {
			return nil, err
		}

		records := make([]media.Record, 0, len(response.Query.Search))
		for _, hit := range response.Query.Search {
			stub, err := media.NewStub(media.TypeWiki, media.Meta{
				Title:        hit.Title,
				EnglishTitle: hit.Title,
				Year:         wikiYear(hit.Timestamp),
				DataSource:   w.info.Name,
				URL:          w.articleURL(hit.PageID),
				ID:           fmt.Sprint(hit.PageID),
			})
			if err != nil {
				return nil, UpstreamError(w.info.Name, 0, err.Error())
			}
			records = append(records, stub)
		}

		return records, nil
	})
}

func (w *Wikipedia) GetByID(ctx context.Context, id string) (media.Record, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "extracts|info")
	q.Set("pageids", id)
	q.Set("exintro", "1")
	q.Set("inprop", "url")
	q.Set("format", "json")

	var response struct {
		Query struct {
			Pages map[string]struct {
				PageID  int    `json:"pageid"`
				Title   string `json:"title"`
				Extract string `json:"extract"`
				FullURL string `json:"fullurl"`
				Touched string `json:"touched"`
				Length  int    `json:"length"`
				Missing any    `json:"missing"`
			} `json:"pages"`
		} `json:"query"`
	}
	err := getJSON(ctx, w.client, w.info.Name, w.endpoint()+"?"+q.Encode(), nil, &response)
	if err != nil {
		return nil, err
	}

	page, ok := response.Query.Pages[id]
	if !ok || page.Missing != nil {
		return nil, NotFoundError(w.info.Name, fmt.Sprintf("no article with page id %q", id))
	}

	articleURL := page.FullURL
	if articleURL == "" {
		articleURL = w.articleURL(page.PageID)
	}

	return &media.Wiki{
		Meta: media.Meta{
			Title:        page.Title,
			EnglishTitle: page.Title,
			Year:         wikiYear(page.Touched),
			DataSource:   w.info.Name,
			URL:          articleURL,
			ID:           id,
		},
		WikiURL:     articleURL,
		Summary:     stripHTML(page.Extract),
		LastUpdated: dateformat.Format(page.Touched, mo.None[string]()).OrElse(""),
		Length:      page.Length,
	}, nil
}

// wikiYear derives the display year from a MediaWiki timestamp.
func wikiYear(timestamp string) string {
	if len(timestamp) < 4 {
		return media.YearUnknown
	}
	return timestamp[:4]
}

// stripHTML flattens a MediaWiki HTML extract into plain text.
func stripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}
