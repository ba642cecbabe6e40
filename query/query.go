// Package query keeps the search history used for shell completion suggestions.
package query

import (
	"strings"
	"sync"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

// History is a ranked set of past queries persisted in one file.
type History struct {
	mu          sync.Mutex
	cacher      *gache.Cache[map[string]*record]
	suggestions map[string][]string
}

// NewHistory stores the history at path.
func NewHistory(path string) *History {
	return &History{
		cacher: gache.New[map[string]*record](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
		suggestions: make(map[string][]string),
	}
}

var (
	defaultHistory     *History
	defaultHistoryOnce sync.Once
)

// Default is the history kept in the user cache directory.
func Default() *History {
	defaultHistoryOnce.Do(func() {
		defaultHistory = NewHistory(where.Queries())
	})
	return defaultHistory
}

func (h *History) load() map[string]*record {
	cached, expired, err := h.cacher.Get()
	if err != nil || expired || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember records q or raises its rank by weight.
func (h *History) Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	records := h.load()
	if r, ok := records[q]; ok {
		r.Rank += weight
	} else {
		records[q] = &record{Rank: weight, Query: q}
	}

	clear(h.suggestions)
	return h.cacher.Set(records)
}

// Clear forgets every query.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.suggestions)
	return h.cacher.Set(make(map[string]*record))
}

// Suggest returns the best ranked past query matching q.
func (h *History) Suggest(q string) mo.Option[string] {
	suggestions := h.SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns past queries fuzzily matching q, best ranked first.
// It is empty when search.show_query_suggestions is off.
func (h *History) SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.suggestions[q]; ok {
		return prev
	}

	matched := lo.Filter(lo.Values(h.load()), func(r *record, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})
	slices.SortFunc(matched, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	result := lo.Map(matched, func(r *record, _ int) string { return r.Query })
	h.suggestions[q] = result
	return result
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
