package media

// ComicManga is the record variant for comics, manga, manhwa and similar serial art.
// SubType carries the source-specific refinement vocabulary ("manga", "manhwa", "oneshot").
type ComicManga struct {
	Meta

	Plot          string             `json:"plot,omitempty"`
	Genres        []string           `json:"genres,omitempty"`
	Authors       []string           `json:"authors,omitempty"`
	Chapters      int                `json:"chapters,omitempty"`
	Volumes       int                `json:"volumes,omitempty"`
	Status        string             `json:"status,omitempty"`
	OnlineRating  float64            `json:"onlineRating,omitempty"`
	Image         string             `json:"image,omitempty"`
	Released      bool               `json:"released"`
	PublishedFrom string             `json:"publishedFrom,omitempty"`
	PublishedTo   string             `json:"publishedTo,omitempty"`
	UserData      ComicMangaUserData `json:"userData"`
}

// ComicMangaUserData holds the locally-owned annotation block no upstream populates.
type ComicMangaUserData struct {
	Read           bool    `json:"read"`
	LastRead       string  `json:"lastRead"`
	PersonalRating float64 `json:"personalRating"`
}

func (*ComicManga) Type() Type { return TypeComicManga }

func (c *ComicManga) Base() *Meta { return &c.Meta }

func (c *ComicManga) Flatten() (map[string]any, error) { return flatten(c) }
