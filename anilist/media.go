package anilist

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiko-cli/aiko/constant"
)

// Media is an anime entry as returned by AniList.
type Media struct {
	ID    int `json:"id" jsonschema:"description=ID of the anime on Anilist."`
	IDMal int `json:"idMal" jsonschema:"description=ID of the anime on MyAnimeList."`
	Title struct {
		Romaji  string `json:"romaji" jsonschema:"description=Romanized title of the anime."`
		English string `json:"english" jsonschema:"description=English title of the anime."`
		Native  string `json:"native" jsonschema:"description=Native title of the anime. Usually in kanji."`
	} `json:"title"`
	// Description is HTML.
	Description string `json:"description"`
	CoverImage  struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
		Medium     string `json:"medium"`
		Color      string `json:"color"`
	} `json:"coverImage"`
	BannerImage  string   `json:"bannerImage"`
	Genres       []string `json:"genres"`
	Season       Season   `json:"season"`
	SeasonYear   int      `json:"seasonYear"`
	Status       string   `json:"status" jsonschema:"enum=FINISHED,enum=RELEASING,enum=NOT_YET_RELEASED,enum=CANCELLED,enum=HIATUS"`
	Episodes     int      `json:"episodes"`
	AverageScore int      `json:"averageScore"`
	SiteURL      string   `json:"siteUrl"`
	IsAdult      bool     `json:"isAdult"`
}

// Name is the first non-empty of the english, romaji and native titles.
func (m *Media) Name() string {
	for _, t := range []string{m.Title.English, m.Title.Romaji, m.Title.Native} {
		if t != "" {
			return t
		}
	}
	return "Unknown"
}

// Cover is the largest cover image available.
func (m *Media) Cover() string {
	for _, c := range []string{m.CoverImage.ExtraLarge, m.CoverImage.Large, m.CoverImage.Medium} {
		if c != "" {
			return c
		}
	}
	return ""
}

// PlainDescription strips the HTML markup from the description.
func (m *Media) PlainDescription() string {
	return PlainText(m.Description)
}

// PlainText renders an HTML fragment as text, keeping line breaks.
func PlainText(html string) string {
	if html == "" {
		return ""
	}

	html = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n").Replace(html)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(collapseBlank(lines))
}

func collapseBlank(lines []string) string {
	var b strings.Builder
	blank := 0
	for _, line := range lines {
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary is the flattened view of a Media used by listings.
type Summary struct {
	ID          int      `json:"id"`
	MalID       int      `json:"malId"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl"`
	Rating      int      `json:"rating"`
	Description string   `json:"description"`
	Season      Season   `json:"season"`
	SeasonYear  int      `json:"seasonYear"`
	Genres      []string `json:"genres"`
	CoverImage  string   `json:"coverImage"`
	Episodes    int      `json:"episodes"`
}

// URL is the AniList page of the summarized anime.
func (s Summary) URL() string {
	return constant.AnilistAnimeURL + strconv.Itoa(s.ID)
}

// Summarize flattens m.
func Summarize(m *Media) Summary {
	image := m.BannerImage
	if image == "" {
		image = m.Cover()
	}

	return Summary{
		ID:          m.ID,
		MalID:       m.IDMal,
		Title:       m.Name(),
		ImageURL:    image,
		Rating:      m.AverageScore,
		Description: m.PlainDescription(),
		Season:      m.Season,
		SeasonYear:  m.SeasonYear,
		Genres:      m.Genres,
		CoverImage:  m.Cover(),
		Episodes:    m.Episodes,
	}
}
