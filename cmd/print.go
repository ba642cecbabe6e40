package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/color"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/style"
	"github.com/aiko-cli/aiko/util"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printSummaries prints one ranked line per title, starting at rank from.
func printSummaries(cmd *cobra.Command, summaries []anilist.Summary, from int) {
	width := util.TerminalWidth(80)

	for i, s := range summaries {
		rank := style.Faint(fmt.Sprintf("%2d.", from+i))
		title := util.Truncate(s.Title, util.Clamp(width-16, 10, width))
		cmd.Printf("%s %s %s\n", rank, style.Bold(title), style.Faint(fmt.Sprintf("#%d", s.ID)))

		var meta []string
		if s.Rating > 0 {
			meta = append(meta, fmt.Sprintf("%s %d%%", icon.Get(icon.Star), s.Rating))
		}
		if s.Season != "" && s.SeasonYear > 0 {
			meta = append(meta, fmt.Sprintf("%s %d", s.Season, s.SeasonYear))
		}
		if s.Episodes > 0 {
			meta = append(meta, util.Quantify(s.Episodes, "episode", "episodes"))
		}

		if len(meta) > 0 {
			cmd.Println("    " + style.Fg(color.Yellow)(strings.Join(meta, " · ")))
		}
	}
}

// printSummary prints a title with its wrapped description.
func printSummary(cmd *cobra.Command, s anilist.Summary) {
	width := util.TerminalWidth(80) - 4

	cmd.Println(style.Title(s.Title))
	cmd.Println()

	facts := []string{fmt.Sprintf("%s %d%%", icon.Get(icon.Star), s.Rating)}
	if s.Episodes > 0 {
		facts = append(facts, util.Quantify(s.Episodes, "episode", "episodes"))
	}
	if s.Season != "" && s.SeasonYear > 0 {
		facts = append(facts, fmt.Sprintf("%s %d", s.Season, s.SeasonYear))
	}
	cmd.Println("  " + strings.Join(facts, " · "))

	if len(s.Genres) > 0 {
		cmd.Println("  " + style.Faint(strings.Join(s.Genres, ", ")))
	}
	cmd.Println("  " + style.Accented(s.URL()))

	if s.Description != "" {
		cmd.Println()
		cmd.Println(indent.String(wordwrap.String(s.Description, width), 2))
	}
}
