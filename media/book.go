package media

// Book is the record variant for printed and electronic books.
type Book struct {
	Meta

	Author       []string     `json:"author,omitempty"`
	Plot         string       `json:"plot,omitempty"`
	Pages        int          `json:"pages,omitempty"`
	Publishers   []string     `json:"publishers,omitempty"`
	OnlineRating float64      `json:"onlineRating,omitempty"`
	ISBN         string       `json:"isbn,omitempty"`
	ISBN13       string       `json:"isbn13,omitempty"`
	Image        string       `json:"image,omitempty"`
	Released     bool         `json:"released"`
	ReleaseDate  string       `json:"releaseDate,omitempty"`
	UserData     BookUserData `json:"userData"`
}

// BookUserData holds the locally-owned annotation block no upstream populates.
type BookUserData struct {
	Read           bool    `json:"read"`
	LastRead       string  `json:"lastRead"`
	PersonalRating float64 `json:"personalRating"`
}

func (*Book) Type() Type { return TypeBook }

func (b *Book) Base() *Meta { return &b.Meta }

func (b *Book) Flatten() (map[string]any, error) { return flatten(b) }
