package dateformat

import (
	"strings"
	"time"

	"github.com/mediadex-cli/mediadex/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Moment-style tokens mapped onto Go's reference time. Longer tokens first so
// "YYYY" never partially matches as two "YY".
var tokenReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MMMM", "January",
	"MMM", "Jan",
	"MM", "01",
	"DD", "02",
	"dddd", "Monday",
	"ddd", "Mon",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// Layouts tried, in order, when the caller does not name the source format.
var lenientLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"02/01/2006",
	"01/02/2006",
}

// Layout translates a moment.js style format string into a Go time layout.
func Layout(momentFormat string) string {
	return tokenReplacer.Replace(momentFormat)
}

// Format parses a raw upstream date and renders it in the user's configured
// format. When sourceFormat is present it is tried first; otherwise a set of
// common upstream layouts is probed. A date that cannot be parsed yields None,
// never a fabricated value.
func Format(raw string, sourceFormat mo.Option[string]) mo.Option[string] {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return mo.None[string]()
	}

	parsed := parse(raw, sourceFormat)
	if parsed.IsAbsent() {
		return mo.None[string]()
	}

	return mo.Some(parsed.MustGet().Format(outputLayout()))
}

func parse(raw string, sourceFormat mo.Option[string]) mo.Option[time.Time] {
	if format, ok := sourceFormat.Get(); ok {
		if t, err := time.Parse(Layout(format), raw); err == nil {
			return mo.Some(t)
		}
	}

	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return mo.Some(t)
		}
	}

	return mo.None[time.Time]()
}

func outputLayout() string {
	format := viper.GetString(key.DateFormat)
	if format == "" {
		format = "YYYY-MM-DD"
	}
	return Layout(format)
}
