package style

import (
	"strings"

	"github.com/aiko-cli/aiko/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")

	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Sky      = lipgloss.Color("#89dceb")
	Lavender = lipgloss.Color("#b4befe")
	Latte    = lipgloss.Color("#4c4f69")

	SuccessColor = Green
	WarningColor = Yellow
	ErrorColor   = Red
	FaintColor   = Overlay
	BorderColor  = Surface
)

// Accent is the primary color of a theme.
type Accent struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
}

var accents = map[string]Accent{
	"LIGHT":  {Primary: Latte, Secondary: Sky},
	"ORANGE": {Primary: Peach, Secondary: Yellow},
	"PURPLE": {Primary: Mauve, Secondary: Lavender},
}

// AccentFor returns the accent of theme, falling back to ORANGE.
func AccentFor(theme string) Accent {
	if a, ok := accents[strings.ToUpper(theme)]; ok {
		return a
	}
	return accents["ORANGE"]
}

// CurrentAccent is the accent of the configured ui.theme.
func CurrentAccent() Accent {
	return AccentFor(viper.GetString(key.UITheme))
}
