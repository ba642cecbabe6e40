// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Aiko is the canonical application identifier used for filesystem paths and CLI branding.
	Aiko = "aiko"

	// Version is the current application semantic version string.
	Version = "1.0.0"

	// UserAgent is the default HTTP User-Agent string used for requests to the streaming API.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Remote endpoints.
const (
	AnilistGraphQL  = "https://graphql.anilist.co"
	AnilistOAuthURL = "https://anilist.co/api/v2/oauth/authorize"
	AnilistAnimeURL = "https://anilist.co/anime/"
	VersionFileURL  = "https://raw.githubusercontent.com/DubskySteam/aiko/refs/heads/VERSION_CHECK/VERSION"
	ReleasesURL     = "https://github.com/DubskySteam/aiko/releases"
)
