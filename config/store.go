package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/key"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Store is the settings record backed by a TOML file.
// Every mutation rewrites the whole file.
type Store struct {
	mu sync.RWMutex
	// v answers reads and sees environment overrides.
	v *viper.Viper
	// file mirrors only defaults, the file and setters. It is what gets written.
	file *viper.Viper
	fs   afero.Fs
	path string
}

// New binds v to the TOML file at path on fs and registers defaults and
// environment bindings. Nothing is read until Load.
func New(v *viper.Viper, fs afero.Fs, path string) *Store {
	file := viper.New()
	for _, x := range []*viper.Viper{v, file} {
		x.SetConfigFile(path)
		x.SetConfigType("toml")
		x.SetFs(fs)
		x.SetTypeByDefaultValue(true)
		for name, field := range Default {
			x.SetDefault(name, field.Value)
		}
	}

	v.SetEnvPrefix(constant.Aiko)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		_ = v.BindEnv(env)
	}

	return &Store{v: v, file: file, fs: fs, path: path}
}

// Path is the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file if it exists. A missing file leaves the defaults in place.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := s.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := s.file.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Get returns the raw value for k.
func (s *Store) Get(k string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Get(k)
}

// Settings returns a typed snapshot of the current record.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Settings{
		Resolution: Resolution(s.v.GetString(key.PlayerResolution)),
		Logging:    s.v.GetBool(key.LogsWrite),
		Theme:      Theme(s.v.GetString(key.UITheme)),
		Proxy:      s.v.GetString(key.StreamProxy),
		Referrer:   s.v.GetString(key.StreamReferrer),
		API:        s.v.GetString(key.StreamAPI),
		Token:      s.v.GetString(key.AnilistToken),
		Username:   s.v.GetString(key.AnilistUsername),
		Adult:      s.v.GetBool(key.AnilistAdult),
		AutoUpdate: s.v.GetBool(key.CliAutoUpdate),
	}
}

// IsValid reports whether the streaming connection parameters are all set.
func (s *Store) IsValid() bool {
	st := s.Settings()
	return st.API != "" && st.Proxy != "" && st.Referrer != ""
}

// Set assigns a registered key and persists the record.
func (s *Store) Set(k string, value any) error {
	if _, ok := Default[k]; !ok {
		return fmt.Errorf("unknown key %s", k)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(k, value)
	s.file.Set(k, value)
	return s.persist()
}

// Reset restores k to its default and persists the record.
func (s *Store) Reset(k string) error {
	field, ok := Default[k]
	if !ok {
		return fmt.Errorf("unknown key %s", k)
	}
	return s.Set(k, field.Value)
}

// ResetAll restores every key to its default and persists once.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, field := range Default {
		s.v.Set(k, field.Value)
		s.file.Set(k, field.Value)
	}
	return s.persist()
}

// SetResolution validates and stores the preferred playback resolution.
func (s *Store) SetResolution(r Resolution) error {
	if _, err := ParseResolution(string(r)); err != nil {
		return err
	}
	return s.Set(key.PlayerResolution, string(r))
}

// SetTheme validates and stores the accent theme.
func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return s.Set(key.UITheme, string(t))
}

// SetLogging toggles writing log files.
func (s *Store) SetLogging(enabled bool) error { return s.Set(key.LogsWrite, enabled) }

// SetProxy sets the base URL playlists are routed through.
func (s *Store) SetProxy(proxy string) error { return s.Set(key.StreamProxy, proxy) }

// SetReferrer sets the Referer header sent with stream requests.
func (s *Store) SetReferrer(ref string) error { return s.Set(key.StreamReferrer, ref) }

// SetAPI sets the streaming API base URL.
func (s *Store) SetAPI(api string) error { return s.Set(key.StreamAPI, api) }

// SetToken stores the Anilist access token in the config file.
func (s *Store) SetToken(token string) error { return s.Set(key.AnilistToken, token) }

// SetUsername remembers the authenticated Anilist user.
func (s *Store) SetUsername(name string) error { return s.Set(key.AnilistUsername, name) }

// SetAdult toggles adult titles in Anilist queries.
func (s *Store) SetAdult(adult bool) error { return s.Set(key.AnilistAdult, adult) }

// SetAutoUpdate toggles the new version notice.
func (s *Store) SetAutoUpdate(enable bool) error { return s.Set(key.CliAutoUpdate, enable) }

// persist writes the full record to a temp file and renames it into place.
// Environment overrides are never written. Callers hold s.mu.
func (s *Store) persist() error {
	ext := filepath.Ext(s.path)
	tmp := strings.TrimSuffix(s.path, ext) + ".tmp" + ext

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	if err := s.file.WriteConfigAs(tmp); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write config: %w", err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}

	return nil
}

// ParseValue converts command-line arguments into the type of k's default.
func ParseValue(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("unknown key %s", k)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", k)
	}

	switch field.Value.(type) {
	case string:
		switch k {
		case key.UITheme:
			t, err := ParseTheme(raw[0])
			return string(t), err
		case key.PlayerResolution:
			r, err := ParseResolution(raw[0])
			return string(r), err
		}
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return b, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type for %s", k)
	}
}
