// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/aiko-cli/aiko/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the supported variants.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Info
	Play
	Search
	Star
	Live
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d iconDef) get(variant string) string {
	switch variant {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "✗", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Progress: {emoji: "⌛", nerd: "\uf110", plain: "…", kaomoji: "(・_・ヾ", squares: "🟦"},
	Warn:     {emoji: "⚠️", nerd: "\uf071", plain: "!", kaomoji: "(°ロ°)", squares: "🟨"},
	Info:     {emoji: "ℹ️", nerd: "\uf129", plain: "i", kaomoji: "(・ω・)", squares: "🟦"},
	Play:     {emoji: "▶️", nerd: "\uf04b", plain: ">", kaomoji: "(ง •̀_•́)ง", squares: "🟪"},
	Search:   {emoji: "🔍", nerd: "\uf002", plain: "?", kaomoji: "(¬‿¬)", squares: "🟫"},
	Star:     {emoji: "⭐", nerd: "\uf005", plain: "*", kaomoji: "☆", squares: "🟧"},
	Live:     {emoji: "🔴", nerd: "\uf111", plain: "•", kaomoji: "(⊙_⊙)", squares: "🟥"},
}

// Get renders i in the configured variant. Unknown variants render as "".
func Get(i Icon) string {
	return icons[i].get(viper.GetString(key.IconsVariant))
}
