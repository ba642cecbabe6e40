package anilist

import "fmt"

var mediaFields = `
id
idMal
title {
	romaji
	english
	native
}
description(asHtml: false)
coverImage {
	extraLarge
	large
	medium
	color
}
bannerImage
genres
season
seasonYear
status
episodes
averageScore
siteUrl
isAdult
`

var pageQuery = func(args, filter string) string {
	return fmt.Sprintf(`
query ($page: Int, $perPage: Int%s) {
	Page (page: $page, perPage: $perPage) {
		media (type: ANIME%s) {
			%s
		}
	}
}`, args, filter, mediaFields)
}

var topRatedQuery = pageQuery("", ", sort: SCORE_DESC")

var topAiringQuery = pageQuery("", ", status: RELEASING, sort: SCORE_DESC")

var seasonalQuery = pageQuery(
	", $season: MediaSeason, $seasonYear: Int",
	", season: $season, seasonYear: $seasonYear, sort: POPULARITY_DESC",
)

var filterQuery = pageQuery(
	", $season: MediaSeason, $seasonYear: Int, $status: MediaStatus, $averageScore: Int, $search: String, $isAdult: Boolean, $genres: [String]",
	", season: $season, seasonYear: $seasonYear, status: $status, averageScore_greater: $averageScore, search: $search, isAdult: $isAdult, genre_in: $genres, sort: POPULARITY_DESC",
)

var byIDQuery = fmt.Sprintf(`
query ($id: Int) {
	Media (id: $id, type: ANIME) {
		%s
	}
}`, mediaFields)

var viewerQuery = `
query {
	Viewer {
		id
		name
		about
		avatar {
			large
			medium
		}
		bannerImage
		siteUrl
		statistics {
			anime {
				count
				meanScore
				minutesWatched
				episodesWatched
			}
		}
	}
}`

var userListQuery = fmt.Sprintf(`
query ($userName: String) {
	MediaListCollection (userName: $userName, type: ANIME) {
		lists {
			name
			status
			entries {
				id
				status
				progress
				score
				media {
					%s
				}
			}
		}
	}
}`, mediaFields)

var saveMediaListEntryMutation = `
mutation ($mediaId: Int, $progress: Int, $status: MediaListStatus) {
	SaveMediaListEntry (mediaId: $mediaId, progress: $progress, status: $status) {
		id
		progress
		status
	}
}`
