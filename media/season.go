package media

// Season is the record variant for a single season of a series.
type Season struct {
	Meta

	SeriesTitle  string         `json:"seriesTitle,omitempty"`
	SeasonNumber int            `json:"seasonNumber,omitempty"`
	EpisodeCount int            `json:"episodeCount,omitempty"`
	Plot         string         `json:"plot,omitempty"`
	Image        string         `json:"image,omitempty"`
	AiredFrom    string         `json:"airedFrom,omitempty"`
	UserData     SeasonUserData `json:"userData"`
}

// SeasonUserData holds the locally-owned annotation block no upstream populates.
type SeasonUserData struct {
	Watched        bool    `json:"watched"`
	LastWatched    string  `json:"lastWatched"`
	PersonalRating float64 `json:"personalRating"`
}

func (*Season) Type() Type { return TypeSeason }

func (s *Season) Base() *Meta { return &s.Meta }

func (s *Season) Flatten() (map[string]any, error) { return flatten(s) }
