package anilist

import (
	"context"
	"fmt"
)

type pageResponse struct {
	Page struct {
		Media []*Media `json:"media"`
	} `json:"Page"`
}

func (c *Client) page(ctx context.Context, q string, vars map[string]any) ([]*Media, error) {
	res, err := query[pageResponse](ctx, c, q, vars, false)
	if err != nil {
		return nil, err
	}
	return res.Page.Media, nil
}

func pageVars(page, perPage int) map[string]any {
	return map[string]any{"page": max(page, 1), "perPage": perPage}
}

// TopRated returns the highest scored anime of all time.
func (c *Client) TopRated(ctx context.Context, page, perPage int) ([]*Media, error) {
	logger.Infof("fetching top rated, page %d", page)
	return c.page(ctx, topRatedQuery, pageVars(page, perPage))
}

// TopAiring returns the highest scored anime currently releasing.
func (c *Client) TopAiring(ctx context.Context, page, perPage int) ([]*Media, error) {
	logger.Infof("fetching top airing, page %d", page)
	return c.page(ctx, topAiringQuery, pageVars(page, perPage))
}

// Seasonal returns the most popular anime of a season.
func (c *Client) Seasonal(ctx context.Context, season Season, year, page, perPage int) ([]*Media, error) {
	logger.Infof("fetching %s %d, page %d", season, year, page)
	vars := pageVars(page, perPage)
	vars["season"] = season
	vars["seasonYear"] = year
	return c.page(ctx, seasonalQuery, vars)
}

// Filter narrows a media search. Zero fields are left out of the query.
type Filter struct {
	Page       int
	PerPage    int
	Season     Season
	SeasonYear int
	Status     string
	MinScore   int
	Search     string
	Adult      bool
	Genres     []string
}

func (f Filter) variables() map[string]any {
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 20
	}

	vars := pageVars(f.Page, perPage)
	vars["averageScore"] = f.MinScore
	vars["isAdult"] = f.Adult
	if f.Season != "" {
		vars["season"] = f.Season
	}
	if f.SeasonYear > 0 {
		vars["seasonYear"] = f.SeasonYear
	}
	if f.Status != "" {
		vars["status"] = f.Status
	}
	if f.Search != "" {
		vars["search"] = f.Search
	}
	if len(f.Genres) > 0 {
		vars["genres"] = f.Genres
	}
	return vars
}

// ByFilter searches media matching f.
func (c *Client) ByFilter(ctx context.Context, f Filter) ([]*Media, error) {
	vars := f.variables()
	logger.Infof("searching with %v", vars)
	return c.page(ctx, filterQuery, vars)
}

// GetByID returns the media with the given id, consulting the media cache first.
func (c *Client) GetByID(ctx context.Context, id int) (*Media, error) {
	if c.media != nil {
		if m := c.media.Get(id); m.IsPresent() {
			return m.MustGet(), nil
		}
	}

	logger.Infof("fetching media %d", id)
	res, err := query[struct {
		Media *Media `json:"Media"`
	}](ctx, c, byIDQuery, map[string]any{"id": id}, false)
	if err != nil {
		return nil, err
	}
	if res.Media == nil {
		return nil, fmt.Errorf("anilist: media %d not found", id)
	}

	if c.media != nil {
		if err := c.media.Set(id, res.Media); err != nil {
			logger.Warnf("media cache: %v", err)
		}
	}
	return res.Media, nil
}
