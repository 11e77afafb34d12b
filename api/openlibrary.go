package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediadex-cli/mediadex/media"
)

const openLibraryEndpoint = "https://openlibrary.org"

// OpenLibrary adapts the Open Library search API. Work details are fetched
// through the same search surface with a key query, which returns the richest
// document shape the service offers.
type OpenLibrary struct {
	info   Info
	client *http.Client
}

func NewOpenLibrary(client *http.Client) *OpenLibrary {
	return &OpenLibrary{
		info: Info{
			Name:        "OpenLibraryAPI",
			Description: "Book metadata from the Internet Archive's Open Library",
			URL:         "https://openlibrary.org/",
			Types:       []media.Type{media.TypeBook},
		},
		client: client,
	}
}

func (o *OpenLibrary) Info() Info { return o.info }

type openLibraryDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int      `json:"cover_i"`
	ISBN             []string `json:"isbn"`
	Publisher        []string `json:"publisher"`
	PagesMedian      int      `json:"number_of_pages_median"`
	RatingsAverage   float64  `json:"ratings_average"`
	FirstSentence    []string `json:"first_sentence"`
}

type openLibrarySearchResponse struct {
	Docs []openLibraryDoc `json:"docs"`
}

func (o *OpenLibrary) SearchByTitle(ctx context.Context, title string) ([]media.Record, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("limit", strconv.Itoa(SearchResultCap))

	var response openLibrarySearchResponse
	err := getJSON(ctx, o.client, o.info.Name, openLibraryEndpoint+"/search.json?"+q.Encode(), nil, &response)
	if err != nil {
		return nil, err
	}

	records := make([]media.Record, 0, len(response.Docs))
	for _, doc := range response.Docs {
		stub, err := media.NewStub(media.TypeBook, o.meta(doc))
		if err != nil {
			return nil, UpstreamError(o.info.Name, 0, err.Error())
		}
		records = append(records, stub)
	}

	return records, nil
}

func (o *OpenLibrary) GetByID(ctx context.Context, id string) (media.Record, error) {
	q := url.Values{}
	q.Set("q", "key:/works/"+id)

	var response openLibrarySearchResponse
	err := getJSON(ctx, o.client, o.info.Name, openLibraryEndpoint+"/search.json?"+q.Encode(), nil, &response)
	if err != nil {
		return nil, err
	}

	if len(response.Docs) == 0 {
		return nil, NotFoundError(o.info.Name, fmt.Sprintf("no work with id %q", id))
	}

	doc := response.Docs[0]

	var isbn, isbn13 string
	for _, candidate := range doc.ISBN {
		switch {
		case len(candidate) == 10 && isbn == "":
			isbn = candidate
		case len(candidate) == 13 && isbn13 == "":
			isbn13 = candidate
		}
	}

	image := ""
	if doc.CoverID > 0 {
		image = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", doc.CoverID)
	}

	plot := ""
	if len(doc.FirstSentence) > 0 {
		plot = doc.FirstSentence[0]
	}

	releaseDate := ""
	if doc.FirstPublishYear > 0 {
		releaseDate = strconv.Itoa(doc.FirstPublishYear)
	}

	return &media.Book{
		Meta:         o.meta(doc),
		Author:       doc.AuthorName,
		Plot:         plot,
		Pages:        doc.PagesMedian,
		Publishers:   doc.Publisher,
		OnlineRating: doc.RatingsAverage,
		ISBN:         isbn,
		ISBN13:       isbn13,
		Image:        image,
		Released:     doc.FirstPublishYear > 0,
		ReleaseDate:  releaseDate,
	}, nil
}

func (o *OpenLibrary) meta(doc openLibraryDoc) media.Meta {
	year := media.YearUnknown
	if doc.FirstPublishYear > 0 {
		year = strconv.Itoa(doc.FirstPublishYear)
	}

	id := strings.TrimPrefix(doc.Key, "/works/")

	return media.Meta{
		Title:        doc.Title,
		EnglishTitle: doc.Title,
		Year:         year,
		DataSource:   o.info.Name,
		URL:          openLibraryEndpoint + "/works/" + id,
		ID:           id,
	}
}
