package anilist

import (
	"fmt"
	"strings"
	"time"
)

// Season is an AniList MediaSeason.
type Season string

const (
	Winter Season = "WINTER"
	Spring Season = "SPRING"
	Summer Season = "SUMMER"
	Fall   Season = "FALL"
)

// Seasons lists the seasons in calendar order.
func Seasons() []Season {
	return []Season{Winter, Spring, Summer, Fall}
}

// ParseSeason accepts a season name in any case.
func ParseSeason(s string) (Season, error) {
	season := Season(strings.ToUpper(strings.TrimSpace(s)))
	switch season {
	case Winter, Spring, Summer, Fall:
		return season, nil
	}
	return "", fmt.Errorf("unknown season %q", s)
}

// SeasonOf returns the anime season t falls in and its year.
// December belongs to the following year's winter.
func SeasonOf(t time.Time) (Season, int) {
	year := t.Year()
	switch t.Month() {
	case time.December:
		return Winter, year + 1
	case time.January, time.February:
		return Winter, year
	case time.March, time.April, time.May:
		return Spring, year
	case time.June, time.July, time.August:
		return Summer, year
	default:
		return Fall, year
	}
}

func (s Season) String() string {
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(string(s[:1])) + strings.ToLower(string(s[1:]))
}
