// Package player launches an external media player for a resolved stream.
package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/log"
)

// DefaultBinary is used when no player is configured.
const DefaultBinary = "mpv"

var (
	logger = log.Component("player")

	// ErrNotFound is returned when the player binary is not on PATH.
	ErrNotFound = errors.New("player not found")
)

// Options describes one playback session.
type Options struct {
	Binary   string
	URL      string
	Title    string
	Referrer string
	Subtitle string

	// Start is the initial position in seconds.
	Start int

	// Chapters are written next to the session and handed to the player.
	Chapters   []Chapter
	ChapterDir string
}

// Args builds the player command line. The media target is always last.
func Args(opts Options) ([]string, error) {
	target, err := sanitizeMediaTarget(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	args := []string{"--force-window=yes"}

	if title := sanitizeTitle(opts.Title); title != "" {
		args = append(args, "--force-media-title="+title)
	}

	if opts.Referrer != "" {
		args = append(args, "--http-header-fields=Referer: "+sanitizeHeader(opts.Referrer))
	}

	if opts.Subtitle != "" {
		sub, err := sanitizeMediaTarget(opts.Subtitle)
		if err != nil {
			return nil, fmt.Errorf("invalid subtitle: %w", err)
		}
		args = append(args, "--sub-file="+sub)
	}

	if opts.Start > 0 {
		args = append(args, fmt.Sprintf("--start=%d", opts.Start))
	}

	return append(args, target), nil
}

// Play runs the player and blocks until it exits or ctx is done.
func Play(ctx context.Context, opts Options) error {
	binary := opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, binary)
	}

	args, err := Args(opts)
	if err != nil {
		return err
	}

	if len(opts.Chapters) > 0 && opts.ChapterDir != "" {
		file, err := WriteChapters(filesystem.API(), opts.ChapterDir, opts.Chapters)
		if err != nil {
			logger.Warnf("chapters skipped: %v", err)
		} else {
			defer func() { _ = filesystem.API().Remove(file) }()
			args = append([]string{"--chapters-file=" + file}, args...)
		}
	}

	cmd := exec.Command(path, args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdin = os.Stdin
	cmd.Stdout = nil
	cmd.Stderr = nil

	logger.Infof("launching %s for %q", binary, opts.Title)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s exited: %w", binary, err)
		}
		return nil
	case <-ctx.Done():
		_ = killProcess(cmd)
		<-done
		return ctx.Err()
	}
}
