package media

// MusicRelease is the record variant for albums, EPs and singles.
// SubType carries the release group kind reported by the source ("album", "ep", "single").
type MusicRelease struct {
	Meta

	Genres   []string             `json:"genres,omitempty"`
	Artists  []string             `json:"artists,omitempty"`
	Label    []string             `json:"label,omitempty"`
	Rating   float64              `json:"rating,omitempty"`
	Image    string               `json:"image,omitempty"`
	UserData MusicReleaseUserData `json:"userData"`
}

// MusicReleaseUserData holds the locally-owned annotation block no upstream populates.
type MusicReleaseUserData struct {
	PersonalRating float64 `json:"personalRating"`
}

func (*MusicRelease) Type() Type { return TypeMusicRelease }

func (m *MusicRelease) Base() *Meta { return &m.Meta }

func (m *MusicRelease) Flatten() (map[string]any, error) { return flatten(m) }
