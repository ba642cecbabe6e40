// Package key defines the canonical set of configuration identifiers.
package key

// Playback
const (
	PlayerResolution = "player.resolution"
	Player           = "player.default"
	Aniskip          = "player.aniskip"
)

// Streaming API connection parameters.
const (
	StreamProxy          = "stream.proxy"
	StreamReferrer       = "stream.referrer"
	StreamAPI            = "stream.api"
	StreamTLSFingerprint = "stream.tls_fingerprint"
)

// Anilist account and content filters.
const (
	AnilistToken    = "anilist.token"
	AnilistUsername = "anilist.username"
	AnilistClientID = "anilist.client_id"
	AnilistAdult    = "anilist.adult"
	AnilistKeyring  = "anilist.keyring"
)

// Logging
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Look and feel.
const (
	UITheme      = "ui.theme"
	IconsVariant = "icons.variant"
)

// CLI behaviour.
const (
	CliAutoUpdate = "cli.auto_update"
	CliColored    = "cli.colored"
)

// Search
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)
