package media

// Wiki is the record variant for encyclopedia articles.
type Wiki struct {
	Meta

	WikiURL     string       `json:"wikiUrl,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	LastUpdated string       `json:"lastUpdated,omitempty"`
	Length      int          `json:"length,omitempty"`
	UserData    WikiUserData `json:"userData"`
}

// WikiUserData holds the locally-owned annotation block no upstream populates.
type WikiUserData struct {
	Read           bool    `json:"read"`
	PersonalRating float64 `json:"personalRating"`
}

func (*Wiki) Type() Type { return TypeWiki }

func (w *Wiki) Base() *Meta { return &w.Meta }

func (w *Wiki) Flatten() (map[string]any, error) { return flatten(w) }
