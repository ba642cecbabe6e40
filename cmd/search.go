package cmd

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/query"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var mediaStatuses = []string{"RELEASING", "FINISHED", "NOT_YET_RELEASED", "CANCELLED", "HIATUS"}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("season", "s", "", "Season (winter, spring, summer, fall)")
	searchCmd.Flags().IntP("year", "y", 0, "Season year")
	searchCmd.Flags().String("status", "", "Airing status ("+strings.Join(mediaStatuses, ", ")+")")
	searchCmd.Flags().Int("min-score", 0, "Minimum average score (0-100)")
	searchCmd.Flags().StringSliceP("genre", "g", nil, "Genres every result must have")
	searchCmd.Flags().IntP("page", "p", 1, "Result page")
	searchCmd.Flags().IntP("count", "n", 20, "Results per page")
	searchCmd.Flags().BoolP("json", "j", false, "Print the results as JSON")

	lo.Must0(searchCmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return mediaStatuses, cobra.ShellCompDirectiveNoFileComp
	}))
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search anime on Anilist",
	Example: `  aiko search frieren
  aiko search --season fall --year 2023 --min-score 80
  aiko search -g Action -g Comedy`,
	ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return query.Default().SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		filter := anilist.Filter{
			Search:     strings.Join(args, " "),
			SeasonYear: lo.Must(cmd.Flags().GetInt("year")),
			Status:     strings.ToUpper(lo.Must(cmd.Flags().GetString("status"))),
			MinScore:   lo.Must(cmd.Flags().GetInt("min-score")),
			Genres:     lo.Must(cmd.Flags().GetStringSlice("genre")),
			Page:       lo.Must(cmd.Flags().GetInt("page")),
			PerPage:    lo.Must(cmd.Flags().GetInt("count")),
			Adult:      viper.GetBool(key.AnilistAdult),
		}

		if raw := lo.Must(cmd.Flags().GetString("season")); raw != "" {
			season, err := anilist.ParseSeason(raw)
			handleErr(err)
			filter.Season = season
		}

		if filter.Status != "" && !lo.Contains(mediaStatuses, filter.Status) {
			handleErr(errors.New("unknown status " + filter.Status))
		}

		narrowed := filter.Season != "" || filter.SeasonYear > 0 || filter.Status != "" ||
			filter.MinScore > 0 || len(filter.Genres) > 0
		if filter.Search == "" && !narrowed {
			filter.Search = askQuery()
		}

		history := query.Default()
		if filter.Search != "" {
			if err := history.Remember(filter.Search, 1); err != nil {
				logger.Warnf("remember query: %v", err)
			}
		}

		media, err := anilistClient().ByFilter(cmd.Context(), filter)
		handleErr(err)

		summaries := lo.Map(media, func(m *anilist.Media, _ int) anilist.Summary {
			return anilist.Summarize(m)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), summaries))
			return
		}

		if len(summaries) == 0 {
			cmd.Println(icon.Get(icon.Info) + " Nothing found")
			return
		}

		printSummaries(cmd, summaries, (filter.Page-1)*filter.PerPage+1)
	},
}

// askQuery prompts for a search query, suggesting past ones.
func askQuery() string {
	var answer string
	prompt := &survey.Input{
		Message: "Search Anilist",
		Suggest: func(toComplete string) []string {
			return query.Default().SuggestMany(toComplete)
		},
	}
	handleErr(survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)))
	return strings.TrimSpace(answer)
}
