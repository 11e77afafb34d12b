package media

// BoardGame is the record variant for tabletop games.
type BoardGame struct {
	Meta

	Plot             string            `json:"plot,omitempty"`
	Genres           []string          `json:"genres,omitempty"`
	Publishers       []string          `json:"publishers,omitempty"`
	OnlineRating     float64           `json:"onlineRating,omitempty"`
	ComplexityRating float64           `json:"complexityRating,omitempty"`
	MinPlayers       int               `json:"minPlayers,omitempty"`
	MaxPlayers       int               `json:"maxPlayers,omitempty"`
	Playtime         string            `json:"playtime,omitempty"`
	Image            string            `json:"image,omitempty"`
	Released         bool              `json:"released"`
	UserData         BoardGameUserData `json:"userData"`
}

// BoardGameUserData holds the locally-owned annotation block no upstream populates.
type BoardGameUserData struct {
	Played         bool    `json:"played"`
	LastPlayed     string  `json:"lastPlayed"`
	PersonalRating float64 `json:"personalRating"`
}

func (*BoardGame) Type() Type { return TypeBoardGame }

func (b *BoardGame) Base() *Meta { return &b.Meta }

func (b *BoardGame) Flatten() (map[string]any, error) { return flatten(b) }
