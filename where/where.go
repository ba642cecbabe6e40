// Package where resolves the per-OS filesystem locations aiko reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "AIKO_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring AIKO_CONFIG_PATH.
// Otherwise it is the OS user config dir (%AppData% on Windows, XDG on Linux) plus "aiko".
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(".", "config")
	}
	return ensureDir(filepath.Join(base, constant.Aiko))
}

// ConfigFile is the TOML settings file.
func ConfigFile() string {
	return filepath.Join(Config(), constant.Aiko+".toml")
}

// Cache returns the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Aiko))
}

// Logs returns the directory holding the daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Queries is the search query history file.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Media is the AniList media-by-id cache file.
func Media() string {
	return filepath.Join(Cache(), "anilist_media.json")
}

// Responses is the directory for cached streaming API responses.
func Responses() string {
	return ensureDir(filepath.Join(Cache(), "responses"))
}

// History is the watch history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// SyncQueue holds Anilist updates waiting to be sent again.
func SyncQueue() string {
	return filepath.Join(Config(), "sync_queue.json")
}
