package anilist

import (
	"context"
	"fmt"
	"strings"
)

// MediaListStatus is the status of an anime on a user's list.
type MediaListStatus string

const (
	MediaListStatusCurrent   MediaListStatus = "CURRENT"
	MediaListStatusPlanning  MediaListStatus = "PLANNING"
	MediaListStatusCompleted MediaListStatus = "COMPLETED"
	MediaListStatusDropped   MediaListStatus = "DROPPED"
	MediaListStatusPaused    MediaListStatus = "PAUSED"
	MediaListStatusRepeating MediaListStatus = "REPEATING"
)

// MediaListStatuses lists every status.
func MediaListStatuses() []MediaListStatus {
	return []MediaListStatus{
		MediaListStatusCurrent,
		MediaListStatusPlanning,
		MediaListStatusCompleted,
		MediaListStatusDropped,
		MediaListStatusPaused,
		MediaListStatusRepeating,
	}
}

// ParseMediaListStatus accepts a status in any case.
func ParseMediaListStatus(s string) (MediaListStatus, error) {
	status := MediaListStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range MediaListStatuses() {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown list status %q", s)
}

// UpdateMediaListEntry sets the progress, and optionally the status, of an
// anime on the authenticated user's list.
func (c *Client) UpdateMediaListEntry(ctx context.Context, mediaID, progress int, status MediaListStatus) (*ListEntry, error) {
	vars := map[string]any{
		"mediaId":  mediaID,
		"progress": progress,
	}
	if status != "" {
		vars["status"] = status
	}

	logger.Infof("updating media %d: progress=%d status=%s", mediaID, progress, status)
	res, err := query[struct {
		SaveMediaListEntry *ListEntry `json:"SaveMediaListEntry"`
	}](ctx, c, saveMediaListEntryMutation, vars, true)
	if err != nil {
		logger.Error(err)
		return nil, err
	}

	logger.Info("update successful")
	return res.SaveMediaListEntry, nil
}
