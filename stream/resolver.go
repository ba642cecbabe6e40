package stream

import (
	"context"
	"errors"
	"fmt"

	"github.com/aiko-cli/aiko/aniskip"
	"github.com/aiko-cli/aiko/network"
	"github.com/samber/mo"
)

// Candidates are the servers tried for every episode, in order.
var Candidates = []string{"hd-1", "hd-2"}

var (
	// ErrExhausted means every candidate server failed with a retryable error.
	ErrExhausted = errors.New("failed after trying all servers")
	// ErrNoSources means a server answered without any media URL.
	ErrNoSources = errors.New("no sources returned")
)

// Fetcher asks a single server for an episode's streams.
type Fetcher interface {
	Sources(ctx context.Context, episodeID, server string) (*StreamInfo, error)
}

// SkipFinder looks up intro and outro ranges by MyAnimeList id.
type SkipFinder interface {
	SkipTimes(ctx context.Context, malID, episode int) (mo.Option[aniskip.SkipTimes], error)
}

// PlaybackSource is everything a player needs for one episode.
type PlaybackSource struct {
	URL      string
	Subtitle mo.Option[Track]
	Server   string
	Referrer string
	Intro    Range
	Outro    Range
	MalID    int
}

// Resolver picks a working server and builds the URL to play.
type Resolver struct {
	fetcher  Fetcher
	proxy    string
	referrer string
	skips    SkipFinder
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSkipFinder fills missing intro and outro ranges from f.
func WithSkipFinder(f SkipFinder) ResolverOption {
	return func(r *Resolver) { r.skips = f }
}

// NewResolver returns a resolver that rewrites media URLs through proxy.
// An empty proxy plays URLs directly.
func NewResolver(fetcher Fetcher, proxy, referrer string, opts ...ResolverOption) *Resolver {
	r := &Resolver{fetcher: fetcher, proxy: proxy, referrer: referrer}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch tries each candidate server in order. A 500 moves on to the next
// server, any other failure is returned as is.
func (r *Resolver) Fetch(ctx context.Context, episodeID string) (*StreamInfo, string, error) {
	for _, server := range Candidates {
		info, err := r.fetcher.Sources(ctx, episodeID, server)
		if err == nil {
			return info, server, nil
		}

		if network.IsRetryable(err) {
			logger.Warnf("server %s failed for %s: %v", server, episodeID, err)
			continue
		}
		return nil, server, err
	}

	logger.Errorf("failed to fetch stream info for %s", episodeID)
	return nil, "", ErrExhausted
}

// Resolve fetches the episode and returns the URL to play.
func (r *Resolver) Resolve(ctx context.Context, episodeID string) (*PlaybackSource, error) {
	info, server, err := r.Fetch(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if len(info.Sources) == 0 || info.Sources[0].URL == "" {
		return nil, fmt.Errorf("%s on %s: %w", episodeID, server, ErrNoSources)
	}

	subtitle := mo.None[Track]()
	if t, ok := SelectSubtitle(info.Tracks); ok {
		subtitle = mo.Some(t)
	}

	return &PlaybackSource{
		URL:      ProxyURL(r.proxy, info.Sources[0].URL, r.referrer),
		Subtitle: subtitle,
		Server:   server,
		Referrer: r.referrer,
		Intro:    info.Intro,
		Outro:    info.Outro,
		MalID:    info.MalID,
	}, nil
}

// ResolveEpisode is Resolve plus a skip time lookup when the API has none.
func (r *Resolver) ResolveEpisode(ctx context.Context, ep Episode) (*PlaybackSource, error) {
	src, err := r.Resolve(ctx, ep.ID)
	if err != nil {
		return nil, err
	}

	if r.skips == nil || (!src.Intro.Empty() && !src.Outro.Empty()) {
		return src, nil
	}

	times, err := r.skips.SkipTimes(ctx, src.MalID, ep.Number)
	if err != nil {
		logger.Warnf("skip times for episode %d: %v", ep.Number, err)
		return src, nil
	}

	if st, ok := times.Get(); ok {
		if src.Intro.Empty() && st.HasIntro {
			src.Intro = Range{Start: int(st.Opening.Start), End: int(st.Opening.End)}
		}
		if src.Outro.Empty() && st.HasOutro {
			src.Outro = Range{Start: int(st.Ending.Start), End: int(st.Ending.End)}
		}
	}
	return src, nil
}
