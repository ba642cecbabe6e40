// Package util holds small helpers shared by the CLI and the TUI.
package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/spf13/afero"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify formats count with the singular or plural noun.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// TerminalSize returns the stdout terminal dimensions.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalWidth is the stdout width, or fallback when stdout is not a terminal.
func TerminalWidth(fallback int) int {
	w, _, err := TerminalSize()
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// PrintErasable writes msg to w and returns a func that blanks it again.
func PrintErasable(w io.Writer, msg string) (erase func()) {
	fmt.Fprintf(w, "\r%s", msg)
	return func() {
		fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Timestamp formats seconds as m:ss, or h:mm:ss past an hour.
func Timestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Truncate shortens s to n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// Delete removes a file or a whole directory on the active backend.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}

// DirSize sums the sizes of the files under path.
func DirSize(path string) (int64, error) {
	var size int64
	err := afero.Walk(filesystem.API(), path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
