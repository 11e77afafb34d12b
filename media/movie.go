package media

// Movie is the record variant for feature films.
type Movie struct {
	Meta

	Plot              string        `json:"plot,omitempty"`
	Genres            []string      `json:"genres,omitempty"`
	Director          []string      `json:"director,omitempty"`
	Writer            []string      `json:"writer,omitempty"`
	Studio            []string      `json:"studio,omitempty"`
	Duration          string        `json:"duration,omitempty"`
	OnlineRating      float64       `json:"onlineRating,omitempty"`
	Actors            []string      `json:"actors,omitempty"`
	Image             string        `json:"image,omitempty"`
	Released          bool          `json:"released"`
	StreamingServices []string      `json:"streamingServices,omitempty"`
	Premiere          string        `json:"premiere,omitempty"`
	UserData          MovieUserData `json:"userData"`
}

// MovieUserData holds the locally-owned annotation block no upstream populates.
type MovieUserData struct {
	Watched        bool    `json:"watched"`
	LastWatched    string  `json:"lastWatched"`
	PersonalRating float64 `json:"personalRating"`
}

func (*Movie) Type() Type { return TypeMovie }

func (m *Movie) Base() *Meta { return &m.Meta }

func (m *Movie) Flatten() (map[string]any, error) { return flatten(m) }
