// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 17

// Archive Endpoint - these keys select the remote archive and shape the bulk collection request.
const (
	ArchiveBaseURL    = "archive.base_url"
	ArchiveSearchRows = "archive.search_rows"
	ArchiveCallback   = "archive.callback"

	ArchiveDetailsCacheHours = "archive.details_cache_hours"
)

// Fetch Resilience - these keys tune request timeouts, rate limiting and retries.
const (
	FetchTimeoutSeconds    = "fetch.timeout_seconds"
	FetchRequestsPerSecond = "fetch.requests_per_second"
	FetchBurst             = "fetch.burst"
	FetchMaxAttempts       = "fetch.max_attempts"
)

// Search Interaction - these keys define the UI/UX parameters for collection search.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling and pacing.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUITickIntervalMillis = "tui.tick_interval_ms"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
