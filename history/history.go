// Package history remembers the last episode resolved for each anime.
package history

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Entry is the most recent episode of one anime.
type Entry struct {
	AnimeID       string    `json:"anime_id"`
	AnimeName     string    `json:"anime_name"`
	Episode       int       `json:"episode"`
	EpisodeID     string    `json:"episode_id"`
	EpisodeTitle  string    `json:"episode_title"`
	TotalEpisodes int       `json:"total_episodes"`
	WatchedAt     time.Time `json:"watched_at"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %d / %d", e.AnimeName, e.Episode, e.TotalEpisodes)
}

// Finished reports whether the last episode was reached.
func (e *Entry) Finished() bool {
	return e.TotalEpisodes > 0 && e.Episode >= e.TotalEpisodes
}

// History is a set of entries keyed by anime, persisted in one file.
type History struct {
	mu     sync.Mutex
	cacher *gache.Cache[map[string]*Entry]
	now    func() time.Time
}

// New keeps the history at path.
func New(path string) *History {
	return &History{
		cacher: gache.New[map[string]*Entry](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
		now: time.Now,
	}
}

var (
	defaultHistory     *History
	defaultHistoryOnce sync.Once
)

// Default is the history in the config directory.
func Default() *History {
	defaultHistoryOnce.Do(func() {
		defaultHistory = New(where.History())
	})
	return defaultHistory
}

func (h *History) load() (map[string]*Entry, error) {
	cached, expired, err := h.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records e as the latest episode of its anime.
func (h *History) Save(e Entry) error {
	if e.AnimeID == "" {
		return fmt.Errorf("history entry without anime id")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	saved, err := h.load()
	if err != nil {
		return err
	}

	e.WatchedAt = h.now()
	saved[e.AnimeID] = &e
	return h.cacher.Set(saved)
}

// All returns every entry, most recently watched first.
func (h *History) All() ([]*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	saved, err := h.load()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].WatchedAt.After(entries[j].WatchedAt)
	})
	return entries, nil
}

// Last is the most recently watched entry.
func (h *History) Last() (mo.Option[*Entry], error) {
	entries, err := h.All()
	if err != nil {
		return mo.None[*Entry](), err
	}
	if len(entries) == 0 {
		return mo.None[*Entry](), nil
	}
	return mo.Some(entries[0]), nil
}

// Remove forgets the entry of animeID.
func (h *History) Remove(animeID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	saved, err := h.load()
	if err != nil {
		return err
	}

	delete(saved, animeID)
	return h.cacher.Set(saved)
}
