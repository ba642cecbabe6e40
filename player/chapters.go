package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/aiko-cli/aiko/stream"
	"github.com/spf13/afero"
)

// Chapter is a named marker on the playback timeline.
type Chapter struct {
	Title string
	Start int
}

// SkipChapters marks the opening and ending so they can be jumped over.
// Unknown ranges add no markers.
func SkipChapters(intro, outro stream.Range) []Chapter {
	if intro.Empty() && outro.Empty() {
		return nil
	}

	chapters := []Chapter{{Title: "Part A", Start: 0}}

	if !intro.Empty() {
		chapters = append(chapters,
			Chapter{Title: "Opening", Start: intro.Start},
			Chapter{Title: "Part B", Start: intro.End},
		)
	}

	if !outro.Empty() {
		chapters = append(chapters,
			Chapter{Title: "Ending", Start: outro.Start},
			Chapter{Title: "Preview", Start: outro.End},
		)
	}

	return chapters
}

// FormatChapters renders chapters in the OGM text format.
func FormatChapters(chapters []Chapter) string {
	var b strings.Builder
	for i, c := range chapters {
		n := i + 1
		d := time.Duration(c.Start) * time.Second
		fmt.Fprintf(&b, "CHAPTER%02d=%02d:%02d:%02d.000\n", n, int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
		fmt.Fprintf(&b, "CHAPTER%02dNAME=%s\n", n, c.Title)
	}
	return b.String()
}

// WriteChapters stores chapters in a new file under dir and returns its path.
func WriteChapters(fs afero.Fs, dir string, chapters []Chapter) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	f, err := afero.TempFile(fs, dir, "chapters-*.txt")
	if err != nil {
		return "", err
	}

	if _, err := f.WriteString(FormatChapters(chapters)); err != nil {
		_ = f.Close()
		_ = fs.Remove(f.Name())
		return "", err
	}

	return f.Name(), f.Close()
}
