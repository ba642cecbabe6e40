// Package aniskip looks up opening and ending timestamps on the AniSkip API.
package aniskip

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/network"
	"github.com/samber/mo"
)

// BaseURL is the public AniSkip endpoint.
const BaseURL = "https://api.aniskip.com/v1/skip-times"

var logger = log.Component("aniskip")

// Interval is a time range in seconds.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SkipTimes holds the opening and ending ranges of one episode.
type SkipTimes struct {
	Opening  Interval `json:"opening"`
	Ending   Interval `json:"ending"`
	HasIntro bool     `json:"has_intro"`
	HasOutro bool     `json:"has_outro"`
}

type response struct {
	Found   bool `json:"found"`
	Results []struct {
		Interval struct {
			StartTime float64 `json:"start_time"`
			EndTime   float64 `json:"end_time"`
		} `json:"interval"`
		SkipType string `json:"skip_type"`
	} `json:"results"`
}

// Client queries the AniSkip API.
type Client struct {
	http *http.Client
	base string
}

// New returns a client for the AniSkip API at base.
func New(client *http.Client, base string) *Client {
	return &Client{http: client, base: base}
}

// Default talks to the public endpoint over the shared client.
func Default() *Client {
	return New(network.Client, BaseURL)
}

// SkipTimes returns the ranges for an episode of the MyAnimeList entry malID.
// Lookups that fail upstream degrade to None so playback is never blocked.
func (c *Client) SkipTimes(ctx context.Context, malID, episode int) (mo.Option[SkipTimes], error) {
	if malID <= 0 || episode <= 0 {
		return mo.None[SkipTimes](), nil
	}

	url := fmt.Sprintf("%s/%d/%d?types=op&types=ed", c.base, malID, episode)
	data, err := network.GetJSON[response](ctx, c.http, url)
	if err != nil {
		var statusErr *network.StatusError
		if errors.As(err, &statusErr) || errors.Is(err, network.ErrEmptyBody) {
			logger.Warnf("no skip times for %d/%d: %v", malID, episode, err)
			return mo.None[SkipTimes](), nil
		}
		return mo.None[SkipTimes](), fmt.Errorf("aniskip: %w", err)
	}

	if !data.Found || len(data.Results) == 0 {
		return mo.None[SkipTimes](), nil
	}

	var times SkipTimes
	for _, result := range data.Results {
		interval := Interval{Start: result.Interval.StartTime, End: result.Interval.EndTime}
		switch result.SkipType {
		case "op":
			times.Opening = interval
			times.HasIntro = true
		case "ed":
			times.Ending = interval
			times.HasOutro = true
		}
	}

	return mo.Some(times), nil
}
