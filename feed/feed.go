// Package feed builds the home screen lists on top of the in-memory response cache.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/internal/cache"
	"github.com/aiko-cli/aiko/log"
	"github.com/samber/lo"
)

const (
	// SpotlightSize is how many seasonal titles are highlighted.
	SpotlightSize = 3
	// ListSize caps the airing and seasonal lists.
	ListSize = 10
)

var logger = log.Component("feed")

// ErrNoData means nothing could be fetched and nothing was cached.
var ErrNoData = errors.New("no data available")

// Source is the subset of the AniList client the feed needs.
type Source interface {
	TopAiring(ctx context.Context, page, perPage int) ([]*anilist.Media, error)
	Seasonal(ctx context.Context, season anilist.Season, year, page, perPage int) ([]*anilist.Media, error)
}

// Home is what the home screen shows.
type Home struct {
	Spotlight []anilist.Summary
	Seasonal  []anilist.Summary
	Airing    []anilist.Summary
	Season    anilist.Season
	Year      int
	// Stale is set when a refresh failed and older data is shown instead.
	Stale bool
	// Age is how long ago the oldest list was fetched.
	Age time.Duration
}

// Service refreshes the lists when the cache says so.
type Service struct {
	src   Source
	cache *cache.Cache[[]anilist.Summary]
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for season selection.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds a feed over src that keeps its lists in c.
func New(src Source, c *cache.Cache[[]anilist.Summary], opts ...Option) *Service {
	s := &Service{src: src, cache: c, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Home returns the home lists, fetching them first when the cache needs a refresh.
// A failed fetch keeps whatever was cached before; the error is returned only
// when there is nothing to show.
func (s *Service) Home(ctx context.Context) (*Home, error) {
	return s.load(ctx, false)
}

// Refresh fetches the lists regardless of cache freshness.
func (s *Service) Refresh(ctx context.Context) (*Home, error) {
	return s.load(ctx, true)
}

func (s *Service) load(ctx context.Context, force bool) (*Home, error) {
	season, year := anilist.SeasonOf(s.now())

	var refreshErr error
	if force || s.cache.NeedsRefresh() {
		refreshErr = s.refresh(ctx, season, year)
		if refreshErr != nil {
			logger.Warnf("refresh failed, keeping cached data: %v", refreshErr)
		}
	}

	airing, airingFresh, airingOK := s.cache.Get(cache.SlotTopAiring)
	seasonal, seasonalFresh, seasonalOK := s.cache.Get(cache.SlotTopSeasonal)
	if !airingOK && !seasonalOK {
		if refreshErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoData, refreshErr)
		}
		return nil, ErrNoData
	}

	var age time.Duration
	for _, slot := range cache.Slots() {
		if a, ok := s.cache.Age(slot); ok {
			age = max(age, a)
		}
	}

	return &Home{
		Age:       age,
		Spotlight: Spotlight(seasonal),
		Seasonal:  lo.Slice(seasonal, 0, ListSize),
		Airing:    lo.Slice(airing, 0, ListSize),
		Season:    season,
		Year:      year,
		Stale:     refreshErr != nil || !airingFresh || !seasonalFresh,
	}, nil
}

// refresh fetches both lists and updates each slot whose fetch succeeded.
func (s *Service) refresh(ctx context.Context, season anilist.Season, year int) error {
	logger.Info("refreshing home lists")

	var errs []error

	airing, err := s.src.TopAiring(ctx, 1, ListSize)
	if err != nil {
		errs = append(errs, fmt.Errorf("top airing: %w", err))
	} else {
		s.cache.Update(cache.SlotTopAiring, summarize(airing))
	}

	seasonal, err := s.src.Seasonal(ctx, season, year, 1, 50)
	if err != nil {
		errs = append(errs, fmt.Errorf("seasonal: %w", err))
	} else {
		s.cache.Update(cache.SlotTopSeasonal, summarize(seasonal))
	}

	return errors.Join(errs...)
}

func summarize(media []*anilist.Media) []anilist.Summary {
	media = lo.Filter(media, func(m *anilist.Media, _ int) bool { return m != nil })
	return lo.Map(media, func(m *anilist.Media, _ int) anilist.Summary {
		return anilist.Summarize(m)
	})
}

// Spotlight returns the best rated titles of list, keeping list order for ties.
func Spotlight(list []anilist.Summary) []anilist.Summary {
	sorted := make([]anilist.Summary, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	return lo.Slice(sorted, 0, SpotlightSize)
}
