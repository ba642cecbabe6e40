package cmd

import (
	"fmt"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/util"
	"github.com/aiko-cli/aiko/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"Response cache", "responses", mo.Some("r"), where.Responses},
	{"Anilist media cache", "media", mo.Some("m"), where.Media},
	{"Query history", "queries", mo.Some("q"), where.Queries},
	{"Log files", "logs", mo.Some("l"), where.Logs},
	{"Watch history", "history", mo.None[string](), where.History},
	{"Pending progress updates", "sync", mo.None[string](), where.SyncQueue},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear the %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
	clearCmd.Flags().BoolP("all", "a", false, "clear everything above")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove caches, history and logs",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool
		all := lo.Must(cmd.Flags().GetBool("all"))

		for _, target := range clearTargets {
			if !all && !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			location := target.location()

			if exists, _ := filesystem.API().Exists(location); !exists {
				cmd.Printf("%s %s is already empty\n", icon.Get(icon.Success), target.name)
				continue
			}

			size, _ := util.DirSize(location)
			erase := util.PrintErasable(cmd.ErrOrStderr(), fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(location)
			erase()
			handleErr(err)

			success(cmd, "%s cleared %s", target.name, formatBytes(size))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("(%d B)", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("(%.1f %ciB)", float64(n)/float64(div), "KMGTPE"[exp])
}
