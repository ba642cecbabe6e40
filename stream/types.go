// Package stream talks to the streaming metadata API and turns an episode into a playable source.
package stream

// Range is a span of an episode in seconds. The zero value means unknown.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Empty reports whether the range covers no time.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Track is a text track attached to a stream.
type Track struct {
	File    string `json:"file"`
	Label   string `json:"label"`
	Kind    string `json:"kind"`
	Default bool   `json:"isDefault"`
}

// Source is one media URL for an episode.
type Source struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// StreamInfo is what one server returns for an episode.
type StreamInfo struct {
	Tracks    []Track  `json:"tracks"`
	Intro     Range    `json:"intro"`
	Outro     Range    `json:"outro"`
	Sources   []Source `json:"sources"`
	AnilistID int      `json:"anilistID"`
	MalID     int      `json:"malID"`
}

// EpisodeCount is the number of subbed and dubbed episodes.
type EpisodeCount struct {
	Sub int `json:"sub"`
	Dub int `json:"dub"`
}

// Anime is a search hit.
type Anime struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	JName    string       `json:"jname,omitempty"`
	Poster   string       `json:"poster"`
	Duration string       `json:"duration"`
	Type     string       `json:"type"`
	Rating   string       `json:"rating"`
	Episodes EpisodeCount `json:"episodes"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Animes            []Anime `json:"animes"`
	MostPopularAnimes []Anime `json:"mostPopularAnimes"`
	CurrentPage       int     `json:"currentPage"`
	TotalPages        int     `json:"totalPages"`
	HasNextPage       bool    `json:"hasNextPage"`
	SearchQuery       string  `json:"searchQuery"`
}

// Episode is an entry of an anime's episode list.
type Episode struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	ID     string `json:"episodeId"`
	Filler bool   `json:"isFiller"`
}

// EpisodeList is the full episode list of an anime.
type EpisodeList struct {
	TotalEpisodes int       `json:"totalEpisodes"`
	Episodes      []Episode `json:"episodes"`
}

// envelope wraps every API payload.
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}
