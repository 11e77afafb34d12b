// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Search Discovery - these keys control the fan-out title search across registered metadata APIs.
const (
	SearchDefaultAPIs          = "search.default_apis"
	SearchSfwFilter            = "search.sfw_filter"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchRankByRelevance      = "search.rank_by_relevance"
)

// Date Normalization - these keys govern how heterogeneous upstream dates are rendered.
const (
	DateFormat = "date.format"
)

// Note Emission - these keys configure the markdown note sink.
const (
	NotesFolder           = "notes.folder"
	NotesFilenameTemplate = "notes.filename_template"
	NotesOverwrite        = "notes.overwrite"
)

// Upstream Credentials - plaintext fallbacks for the system keyring.
const (
	OMDbAPIKey      = "omdb.api_key"
	MobyGamesAPIKey = "mobygames.api_key"
	GiantBombAPIKey = "giantbomb.api_key"
	ComicVineAPIKey = "comicvine.api_key"
	IGDBClientID    = "igdb.client_id"
	IGDBSecret      = "igdb.client_secret"
)

// Per-API Media Type Suppression - these keys hide selected variants from multi-type APIs.
const (
	OMDbDisabledTypes    = "omdb.disabled_types"
	AniListDisabledTypes = "anilist.disabled_types"
)

// Wikipedia Localization.
const (
	WikipediaLanguage = "wikipedia.language"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Diagnostics - these keys configure the logrus-backed logging subsystem.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Command Line Interface presentation.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
