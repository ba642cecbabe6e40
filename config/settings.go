package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Resolution is the playback resolution mode.
type Resolution string

const (
	ResolutionFHD  Resolution = "FHD"
	ResolutionWQHD Resolution = "WQHD"
)

// Theme selects the accent palette.
type Theme string

const (
	ThemeLight  Theme = "LIGHT"
	ThemeOrange Theme = "ORANGE"
	ThemePurple Theme = "PURPLE"
)

// Themes lists the selectable themes.
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeOrange, ThemePurple}
}

// ParseTheme accepts a theme name in any case.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToUpper(strings.TrimSpace(s)))
	if !lo.Contains(Themes(), t) {
		return "", fmt.Errorf("unknown theme %q", s)
	}
	return t, nil
}

// ParseResolution accepts a resolution mode in any case.
func ParseResolution(s string) (Resolution, error) {
	r := Resolution(strings.ToUpper(strings.TrimSpace(s)))
	if r != ResolutionFHD && r != ResolutionWQHD {
		return "", fmt.Errorf("unknown resolution %q", s)
	}
	return r, nil
}

// Settings is a typed snapshot of the persisted record.
type Settings struct {
	Resolution Resolution `json:"resolution" jsonschema:"enum=FHD,enum=WQHD,description=Playback resolution mode."`
	Logging    bool       `json:"logging" jsonschema:"description=Write daily log files."`
	Theme      Theme      `json:"theme" jsonschema:"enum=LIGHT,enum=ORANGE,enum=PURPLE,description=Color theme."`
	Proxy      string     `json:"proxy" jsonschema:"description=Base URL of the m3u8 proxy."`
	Referrer   string     `json:"referrer" jsonschema:"description=Referrer URL passed to the proxy."`
	API        string     `json:"api" jsonschema:"description=Base URL of the streaming metadata API."`
	Token      string     `json:"token" jsonschema:"description=Anilist access token."`
	Username   string     `json:"username" jsonschema:"description=Anilist username."`
	Adult      bool       `json:"adult" jsonschema:"description=Include adult content."`
	AutoUpdate bool       `json:"autoUpdate" jsonschema:"description=Check for a newer release on startup."`
}
