// Package sync keeps Anilist progress updates that could not be sent and replays them later.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	gosync "sync"
	"time"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/where"
	"github.com/spf13/afero"
)

var logger = log.Component("sync")

// Mutation is one deferred list update.
type Mutation struct {
	QueuedAt time.Time               `json:"queued_at"`
	MediaID  int                     `json:"media_id"`
	Progress int                     `json:"progress"`
	Status   anilist.MediaListStatus `json:"status,omitempty"`
}

// Updater sends a list update.
type Updater interface {
	UpdateMediaListEntry(ctx context.Context, mediaID, progress int, status anilist.MediaListStatus) (*anilist.ListEntry, error)
}

// Queue is a JSON file of pending mutations.
type Queue struct {
	mu   gosync.Mutex
	fs   afero.Fs
	path string
	now  func() time.Time
	// Backoff is the pause before the n-th replayed mutation (n starts at 0).
	Backoff func(n int) time.Duration
}

// NewQueue stores pending mutations at path on fs.
func NewQueue(fs afero.Fs, path string) *Queue {
	return &Queue{
		fs:   fs,
		path: path,
		now:  time.Now,
		Backoff: func(n int) time.Duration {
			if n == 0 {
				return 0
			}
			return time.Duration(1<<min(n, 5)) * 100 * time.Millisecond
		},
	}
}

// Default is the queue in the config directory.
func Default() *Queue {
	return NewQueue(filesystem.API(), where.SyncQueue())
}

func (q *Queue) read() ([]Mutation, error) {
	data, err := afero.ReadFile(q.fs, q.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var pending []Mutation
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (q *Queue) write(pending []Mutation) error {
	if len(pending) == 0 {
		err := q.fs.Remove(q.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return filesystem.WriteAtomic(q.fs, q.path, data, 0o644)
}

// Add queues an update. A newer update for the same media replaces the older one.
func (q *Queue) Add(mediaID, progress int, status anilist.MediaListStatus) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending, err := q.read()
	if err != nil {
		return err
	}

	kept := append(without(pending, mediaID), Mutation{
		QueuedAt: q.now(),
		MediaID:  mediaID,
		Progress: progress,
		Status:   status,
	})

	logger.Infof("queued progress %d for media %d", progress, mediaID)
	return q.write(kept)
}

// Drop forgets the queued update of mediaID. Call it once a newer update
// for the same media went through so the older one is never replayed.
func (q *Queue) Drop(mediaID int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending, err := q.read()
	if err != nil {
		return err
	}

	kept := without(pending, mediaID)
	if len(kept) == len(pending) {
		return nil
	}

	logger.Infof("dropped queued update for media %d", mediaID)
	return q.write(kept)
}

func without(pending []Mutation, mediaID int) []Mutation {
	kept := make([]Mutation, 0, len(pending))
	for _, m := range pending {
		if m.MediaID != mediaID {
			kept = append(kept, m)
		}
	}
	return kept
}

// Pending returns the queued mutations in the order they were added.
func (q *Queue) Pending() ([]Mutation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.read()
}

// Reconcile sends every queued mutation through u. Sent mutations leave the
// queue; failed ones stay for the next run. It returns how many were sent.
func (q *Queue) Reconcile(ctx context.Context, u Updater) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending, err := q.read()
	if err != nil || len(pending) == 0 {
		return 0, err
	}

	var (
		failed []Mutation
		errs   []error
	)

	for i, m := range pending {
		if wait := q.Backoff(i); wait > 0 {
			select {
			case <-ctx.Done():
				failed = append(failed, pending[i:]...)
				errs = append(errs, ctx.Err())
				return len(pending) - len(failed), errors.Join(q.write(failed), errors.Join(errs...))
			case <-time.After(wait):
			}
		}

		if _, err := u.UpdateMediaListEntry(ctx, m.MediaID, m.Progress, m.Status); err != nil {
			logger.Warnf("replay media %d: %v", m.MediaID, err)
			failed = append(failed, m)
			errs = append(errs, err)
		}
	}

	sent := len(pending) - len(failed)
	logger.Infof("replayed %d of %d queued updates", sent, len(pending))
	return sent, errors.Join(q.write(failed), errors.Join(errs...))
}
