package cmd

import (
	"fmt"
	"time"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(homeCmd)
	homeCmd.Flags().BoolP("json", "j", false, "Print the lists as JSON")
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Print the spotlight, top airing and seasonal lists",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		home, err := homeFeed().Home(cmd.Context())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), home))
			return
		}

		if home.Stale {
			cmd.PrintErrf("%s Refresh failed, showing data from %s ago\n", icon.Get(icon.Warn), home.Age.Round(time.Second))
		}

		section := func(title string, list []anilist.Summary) {
			cmd.Println(style.Title(title))
			cmd.Println()
			printSummaries(cmd, list, 1)
			cmd.Println()
		}

		section("Spotlight", home.Spotlight)
		section("Top airing", home.Airing)
		section(fmt.Sprintf("%s %d", home.Season, home.Year), home.Seasonal)
	},
}
