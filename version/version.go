// Package version checks the published VERSION file for a newer release.
package version

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/network"
	"github.com/aiko-cli/aiko/where"
	"github.com/metafates/gache"
)

// CacheLifetime is how long a fetched version is reused.
const CacheLifetime = 2 * 24 * time.Hour

var logger = log.Component("version")

// Checker fetches the latest published version.
type Checker struct {
	http  *http.Client
	url   string
	cache *gache.Cache[string]
}

// NewChecker reads the version from url. A nil cache always fetches.
func NewChecker(client *http.Client, url string, cache *gache.Cache[string]) *Checker {
	return &Checker{http: client, url: url, cache: cache}
}

// Default checks the upstream VERSION file with a disk cache.
func Default() *Checker {
	return NewChecker(network.Client, constant.VersionFileURL, gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   CacheLifetime,
		FileSystem: &filesystem.GacheFs{},
	}))
}

// Latest returns the newest published version.
func (c *Checker) Latest(ctx context.Context) (string, error) {
	if c.cache != nil {
		if ver, expired, err := c.cache.Get(); err == nil && !expired && ver != "" {
			return ver, nil
		}
	}

	body, err := network.Do(ctx, c.http, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}

	ver := strings.TrimPrefix(strings.TrimSpace(string(body)), "v")
	if ver == "" {
		return "", errors.New("empty version file")
	}

	if c.cache != nil {
		_ = c.cache.Set(ver)
	}
	return ver, nil
}

// Result is the outcome of an update check.
type Result struct {
	Current string
	Latest  string
}

// UpdateAvailable reports whether Latest is newer than Current.
func (r Result) UpdateAvailable() bool {
	cmp, err := Compare(r.Latest, r.Current)
	return err == nil && cmp > 0
}

// Check compares the latest version against the running one.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	latest, err := c.Latest(ctx)
	if err != nil {
		return Result{Current: constant.Version}, err
	}

	logger.Infof("latest version: %s (current: %s)", latest, constant.Version)
	return Result{Current: constant.Version, Latest: latest}, nil
}
