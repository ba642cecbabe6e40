package constant

import _ "embed"

// Logo is printed above the root command's long help.
//
//go:embed ascii.txt
var Logo string

// Tagline follows the logo in help output.
const Tagline = "Browse AniList and stream anime from the terminal"
