package media

// Game is the record variant for video games.
type Game struct {
	Meta

	Plot         string       `json:"plot,omitempty"`
	Genres       []string     `json:"genres,omitempty"`
	Platforms    []string     `json:"platforms,omitempty"`
	Developers   []string     `json:"developers,omitempty"`
	Publishers   []string     `json:"publishers,omitempty"`
	OnlineRating float64      `json:"onlineRating,omitempty"`
	Image        string       `json:"image,omitempty"`
	Released     bool         `json:"released"`
	ReleaseDate  string       `json:"releaseDate,omitempty"`
	UserData     GameUserData `json:"userData"`
}

// GameUserData holds the locally-owned annotation block no upstream populates.
type GameUserData struct {
	Played         bool    `json:"played"`
	LastPlayed     string  `json:"lastPlayed"`
	PersonalRating float64 `json:"personalRating"`
}

func (*Game) Type() Type { return TypeGame }

func (g *Game) Base() *Meta { return &g.Meta }

func (g *Game) Flatten() (map[string]any, error) { return flatten(g) }
