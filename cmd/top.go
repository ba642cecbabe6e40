package cmd

import (
	"time"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(topCmd)
	topCmd.Flags().BoolP("airing", "a", false, "Only currently airing titles")
	topCmd.Flags().StringP("season", "s", "", "Titles of a season (winter, spring, summer, fall)")
	topCmd.Flags().IntP("year", "y", 0, "Season year, defaults to the current one")
	topCmd.Flags().IntP("page", "p", 1, "Result page")
	topCmd.Flags().IntP("count", "n", 10, "Titles per page")
	topCmd.Flags().BoolP("json", "j", false, "Print the titles as JSON")
	topCmd.MarkFlagsMutuallyExclusive("airing", "season")

	lo.Must0(topCmd.RegisterFlagCompletionFunc("season", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(anilist.Seasons(), func(s anilist.Season, _ int) string {
			return s.String()
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the best rated anime on Anilist",
	Example: `  aiko top
  aiko top --airing
  aiko top --season fall --year 2024 -n 20`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			airing = lo.Must(cmd.Flags().GetBool("airing"))
			rawSsn = lo.Must(cmd.Flags().GetString("season"))
			year   = lo.Must(cmd.Flags().GetInt("year"))
			page   = lo.Must(cmd.Flags().GetInt("page"))
			count  = lo.Must(cmd.Flags().GetInt("count"))
			client = anilistClient()
			ctx    = cmd.Context()

			media []*anilist.Media
			err   error
		)

		switch {
		case airing:
			media, err = client.TopAiring(ctx, page, count)
		case rawSsn != "":
			season, parseErr := anilist.ParseSeason(rawSsn)
			handleErr(parseErr)
			if year == 0 {
				_, year = anilist.SeasonOf(time.Now())
			}
			media, err = client.Seasonal(ctx, season, year, page, count)
		default:
			media, err = client.TopRated(ctx, page, count)
		}
		handleErr(err)

		summaries := lo.Map(media, func(m *anilist.Media, _ int) anilist.Summary {
			return anilist.Summarize(m)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), summaries))
			return
		}

		printSummaries(cmd, summaries, (page-1)*count+1)
	},
}
