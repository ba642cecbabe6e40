package anilist

import "context"

// User is an AniList profile.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"avatar"`
	BannerImage string `json:"bannerImage"`
	SiteURL     string `json:"siteUrl"`
	Statistics  struct {
		Anime struct {
			Count           int     `json:"count"`
			MeanScore       float64 `json:"meanScore"`
			MinutesWatched  int     `json:"minutesWatched"`
			EpisodesWatched int     `json:"episodesWatched"`
		} `json:"anime"`
	} `json:"statistics"`
}

// Viewer returns the profile of the authenticated user.
func (c *Client) Viewer(ctx context.Context) (*User, error) {
	res, err := query[struct {
		Viewer *User `json:"Viewer"`
	}](ctx, c, viewerQuery, nil, true)
	if err != nil {
		return nil, err
	}
	logger.Info("user info retrieved")
	return res.Viewer, nil
}

// ListEntry is one anime on a user's list.
type ListEntry struct {
	ID       int             `json:"id"`
	Status   MediaListStatus `json:"status"`
	Progress int             `json:"progress"`
	Score    float64         `json:"score"`
	Media    *Media          `json:"media"`
}

// List is a named group of entries, such as "Watching" or a custom list.
type List struct {
	Name    string          `json:"name"`
	Status  MediaListStatus `json:"status"`
	Entries []ListEntry     `json:"entries"`
}

// UserAnimeList returns every anime list of userName.
func (c *Client) UserAnimeList(ctx context.Context, userName string) ([]List, error) {
	res, err := query[struct {
		MediaListCollection struct {
			Lists []List `json:"lists"`
		} `json:"MediaListCollection"`
	}](ctx, c, userListQuery, map[string]any{"userName": userName}, false)
	if err != nil {
		return nil, err
	}

	lists := res.MediaListCollection.Lists
	logger.Infof("user animes retrieved: %d lists", len(lists))
	return lists, nil
}
