package cmd

import (
	"fmt"
	"strconv"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/open"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolP("json", "j", false, "Print the anime as JSON")
	infoCmd.Flags().BoolP("open", "o", false, "Open the Anilist page in the browser")
}

var infoCmd = &cobra.Command{
	Use:     "info <anilist id>",
	Short:   "Show the details of an anime",
	Example: "  aiko info 154587",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			handleErr(fmt.Errorf("invalid anilist id %q", args[0]))
		}

		media, err := anilistClient().GetByID(cmd.Context(), id)
		handleErr(err)

		summary := anilist.Summarize(media)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(summary.URL()))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), summary))
			return
		}

		printSummary(cmd, summary)
	},
}
