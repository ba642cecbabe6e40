package cmd

import (
	"fmt"

	"github.com/aiko-cli/aiko/history"
	"github.com/aiko-cli/aiko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("remove", "r", "", "Forget the anime with this id")
	historyCmd.Flags().BoolP("json", "j", false, "Print the history as JSON")
	historyCmd.MarkFlagsMutuallyExclusive("remove", "json")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the last watched episode of each anime",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		h := history.Default()

		if id := lo.Must(cmd.Flags().GetString("remove")); id != "" {
			handleErr(h.Remove(id))
			success(cmd, "forgot %s", id)
			return
		}

		entries, err := h.All()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("Nothing watched yet"))
			return
		}

		for _, e := range entries {
			line := e.String()
			if e.Finished() {
				line += " " + style.Faint("finished")
			}
			cmd.Printf("%s %s\n", line, style.Faint(fmt.Sprintf("(%s, %s)", e.AnimeID, e.WatchedAt.Format("2006-01-02 15:04"))))
		}
	},
}
