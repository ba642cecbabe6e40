package stream

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// ClosestAnime returns the hit whose name is nearest to title.
func ClosestAnime(title string, animes []Anime) (Anime, bool) {
	if len(animes) == 0 {
		return Anime{}, false
	}

	want := strings.ToLower(title)
	distance := func(a Anime) int {
		d := levenshtein.Distance(want, strings.ToLower(a.Name))
		if a.JName != "" {
			d = min(d, levenshtein.Distance(want, strings.ToLower(a.JName)))
		}
		return d
	}

	return lo.MinBy(animes, func(a, b Anime) bool {
		return distance(a) < distance(b)
	}), true
}

// EpisodeByNumber finds episode n in list.
func EpisodeByNumber(list []Episode, n int) (Episode, bool) {
	return lo.Find(list, func(e Episode) bool { return e.Number == n })
}
