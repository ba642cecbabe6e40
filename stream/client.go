package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aiko-cli/aiko/internal/cache"
	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/network"
)

var logger = log.Component("stream")

// ErrNoAPI is returned when no API base URL is configured.
var ErrNoAPI = errors.New("stream API base URL is not configured")

// Client is a REST client for a hianime-compatible API.
type Client struct {
	http *http.Client
	base string
	disk *cache.Disk
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDiskCache keeps search and episode list responses in d.
func WithDiskCache(d *cache.Disk) ClientOption {
	return func(c *Client) { c.disk = d }
}

// NewClient talks to the streaming API rooted at base.
// A trailing slash on base is ignored.
func NewClient(client *http.Client, base string, opts ...ClientOption) *Client {
	c := &Client{
		http: client,
		base: strings.TrimRight(base, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string, query url.Values) (string, error) {
	if c.base == "" {
		return "", ErrNoAPI
	}

	u := c.base + "/api/v2/hianime" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// Search returns one page of results for query. Pages start at 1.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchPage, error) {
	if page < 1 {
		page = 1
	}

	u, err := c.endpoint("/search", url.Values{
		"q":    {query},
		"page": {strconv.Itoa(page)},
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("searching for %s", query)
	res, err := cached[SearchPage](ctx, c, cache.Key("search", query, strconv.Itoa(page)), u)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return res, nil
}

// Episodes returns the episode list of the anime with the given API id.
func (c *Client) Episodes(ctx context.Context, animeID string) (*EpisodeList, error) {
	u, err := c.endpoint("/anime/"+url.PathEscape(animeID)+"/episodes", nil)
	if err != nil {
		return nil, err
	}

	logger.Infof("fetching episode list for %s", animeID)
	res, err := cached[EpisodeList](ctx, c, cache.Key("episodes", animeID), u)
	if err != nil {
		return nil, fmt.Errorf("episodes of %s: %w", animeID, err)
	}
	return res, nil
}

// Sources asks one server for the streams of an episode. Errors are returned
// unwrapped so callers can inspect *network.StatusError directly.
func (c *Client) Sources(ctx context.Context, episodeID, server string) (*StreamInfo, error) {
	u, err := c.endpoint("/episode/sources", url.Values{
		"animeEpisodeId": {episodeID},
		"server":         {server},
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("fetching stream info (server: %s) for %s", server, episodeID)
	res, err := network.GetJSON[envelope[StreamInfo]](ctx, c.http, u)
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func cached[T any](ctx context.Context, c *Client, key, u string) (*T, error) {
	if c.disk != nil {
		var hit T
		if c.disk.Read(key, &hit) {
			return &hit, nil
		}
	}

	res, err := network.GetJSON[envelope[T]](ctx, c.http, u)
	if err != nil {
		return nil, err
	}

	if c.disk != nil {
		if err := c.disk.Write(key, res.Data); err != nil {
			logger.Warnf("cache write: %v", err)
		}
	}
	return &res.Data, nil
}
