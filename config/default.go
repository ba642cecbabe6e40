package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/aiko-cli/aiko/color"
	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/style"
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
	return strings.ToUpper(constant.Aiko + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON includes the current and default values.
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

// typeName is the Go type of the default value, shown in config info.
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
	default:
		return "unknown"
	}
}

// Default holds every registered configuration field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerResolution, string(ResolutionFHD), "Playback resolution mode.\nAvailable options are: FHD, WQHD")
	register(key.Player, "mpv", "External media player binary used by \"aiko stream --play\"")
	register(key.Aniskip, true, "Look up intro/outro timestamps on aniskip when the stream API has none")
	register(key.StreamProxy, "", "Base URL of the m3u8 proxy.\nStreams are played directly when empty")
	register(key.StreamReferrer, "", "Referrer URL passed to the proxy and the player")
	register(key.StreamAPI, "", "Base URL of the streaming metadata API")
	register(key.StreamTLSFingerprint, false, "Use a browser TLS fingerprint when talking to the streaming API")
	register(key.AnilistToken, "", "Anilist access token.\nSet by \"aiko anilist auth\"")
	register(key.AnilistUsername, "", "Anilist username used for list lookups")
	register(key.AnilistClientID, "24329", "Anilist OAuth client ID used for the implicit grant")
	register(key.AnilistAdult, false, "Include adult content in search results")
	register(key.AnilistKeyring, false, "Keep the Anilist token in the system keyring instead of the config file")
	register(key.LogsWrite, false, "Write daily log files")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.UITheme, string(ThemeOrange), "Color theme.\nAvailable options are: LIGHT, ORANGE, PURPLE")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.CliAutoUpdate, false, "Check for a newer release on startup")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.SearchShowQuerySuggestions, true, "Suggest previous queries during shell completion")
}

// prettyTemplate renders a field for config info.
var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
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
