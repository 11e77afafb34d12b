// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/mediadex-cli/mediadex/color"
	"github.com/mediadex-cli/mediadex/constant"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Mediadex + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SearchDefaultAPIs, []string{}, "APIs queried when no --source flag is given.\nEmpty means all registered APIs.\nType \"mediadex sources list\" to show available APIs")
	register(key.SearchSfwFilter, true, "Ask upstream APIs to exclude adult results.\nThe filter is injected into the upstream query, never applied client-side")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.SearchRankByRelevance, false, "Re-rank merged search results by edit distance to the query.\nWhen off, results keep API registration order")
	register(key.DateFormat, "YYYY-MM-DD", "Output format for normalized dates (moment-style tokens)")
	register(key.NotesFolder, "", "Directory where notes are written.\nEmpty means ~/mediadex")
	register(key.NotesFilenameTemplate, "{{ .Type }} - {{ .Title }} ({{ .Year }})", "Filename template for emitted notes")
	register(key.NotesOverwrite, false, "Overwrite an existing note without asking")
	register(key.OMDbAPIKey, "", "OMDb API key.\nPrefer \"mediadex config credentials\" which stores it in the system keyring")
	register(key.MobyGamesAPIKey, "", "MobyGames API key")
	register(key.GiantBombAPIKey, "", "Giant Bomb API key")
	register(key.ComicVineAPIKey, "", "Comic Vine API key")
	register(key.IGDBClientID, "", "Twitch developer client ID for the IGDB API")
	register(key.IGDBSecret, "", "Twitch developer client secret for the IGDB API")
	register(key.OMDbDisabledTypes, []string{}, "Media types OMDb results are suppressed for (movie, series, game)")
	register(key.AniListDisabledTypes, []string{}, "Media types AniList results are suppressed for (movie, series, comicManga)")
	register(key.WikipediaLanguage, "en", "Wikipedia language edition to query")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
