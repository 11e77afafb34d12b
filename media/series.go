package media

// Series is the record variant for episodic shows, including anime.
type Series struct {
	Meta

	Plot              string         `json:"plot,omitempty"`
	Genres            []string       `json:"genres,omitempty"`
	Writer            []string       `json:"writer,omitempty"`
	Studio            []string       `json:"studio,omitempty"`
	Episodes          int            `json:"episodes,omitempty"`
	Duration          string         `json:"duration,omitempty"`
	OnlineRating      float64        `json:"onlineRating,omitempty"`
	Actors            []string       `json:"actors,omitempty"`
	Image             string         `json:"image,omitempty"`
	Released          bool           `json:"released"`
	StreamingServices []string       `json:"streamingServices,omitempty"`
	Airing            bool           `json:"airing"`
	AiredFrom         string         `json:"airedFrom,omitempty"`
	AiredTo           string         `json:"airedTo,omitempty"`
	UserData          SeriesUserData `json:"userData"`
}

// SeriesUserData holds the locally-owned annotation block no upstream populates.
type SeriesUserData struct {
	Watched        bool    `json:"watched"`
	LastWatched    string  `json:"lastWatched"`
	PersonalRating float64 `json:"personalRating"`
}

func (*Series) Type() Type { return TypeSeries }

func (s *Series) Base() *Meta { return &s.Meta }

func (s *Series) Flatten() (map[string]any, error) { return flatten(s) }
