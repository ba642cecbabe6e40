package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aiko-cli/aiko/color"
	"github.com/aiko-cli/aiko/history"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/player"
	"github.com/aiko-cli/aiko/query"
	"github.com/aiko-cli/aiko/stream"
	"github.com/aiko-cli/aiko/style"
	"github.com/aiko-cli/aiko/util"
	"github.com/aiko-cli/aiko/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().IntP("episode", "e", 0, "Episode number, prompts when omitted")
	streamCmd.Flags().BoolP("pick", "P", false, "Choose among the search results instead of taking the closest title")
	streamCmd.Flags().Bool("play", false, "Launch the configured player")
	streamCmd.Flags().Bool("skip-intro", false, "Start playback after the opening")
	streamCmd.Flags().BoolP("json", "j", false, "Print the playback source as JSON")
	streamCmd.Flags().BoolP("continue", "c", false, "Resume the most recently watched anime")
	streamCmd.MarkFlagsMutuallyExclusive("play", "json")
	streamCmd.MarkFlagsMutuallyExclusive("continue", "pick")
}

var streamCmd = &cobra.Command{
	Use:   "stream [title]",
	Short: "Resolve a playable stream for an episode",
	Example: `  aiko stream frieren -e 3
  aiko stream "one piece" -e 1000 --play --skip-intro
  aiko stream --continue --play`,
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("continue")) {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return query.Default().SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		client, err := streamClient()
		handleErr(err)

		var (
			anime   stream.Anime
			episode stream.Episode
			total   int
		)

		if lo.Must(cmd.Flags().GetBool("continue")) {
			anime, episode, total, err = resumeEpisode(cmd, client, lo.Must(cmd.Flags().GetInt("episode")))
			handleErr(err)
		} else {
			title := strings.Join(args, " ")

			erase := util.PrintErasable(cmd.ErrOrStderr(), fmt.Sprintf("%s Searching %s...", icon.Get(icon.Progress), title))
			page, err := client.Search(ctx, title, 1)
			erase()
			handleErr(err)

			if err := query.Default().Remember(title, 1); err != nil {
				logger.Warnf("remember query: %v", err)
			}

			anime, err = chooseAnime(title, page.Animes, lo.Must(cmd.Flags().GetBool("pick")))
			handleErr(err)

			list, err := client.Episodes(ctx, anime.ID)
			handleErr(err)

			episode, err = chooseEpisode(list.Episodes, lo.Must(cmd.Flags().GetInt("episode")))
			handleErr(err)
			total = len(list.Episodes)
		}

		erase := util.PrintErasable(cmd.ErrOrStderr(), fmt.Sprintf("%s Resolving episode %d...", icon.Get(icon.Progress), episode.Number))
		src, err := streamResolver(client).ResolveEpisode(ctx, episode)
		erase()
		handleErr(err)

		err = history.Default().Save(history.Entry{
			AnimeID:       anime.ID,
			AnimeName:     anime.Name,
			Episode:       episode.Number,
			EpisodeID:     episode.ID,
			EpisodeTitle:  episode.Title,
			TotalEpisodes: total,
		})
		if err != nil {
			logger.Warnf("save history: %v", err)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), playbackJSON(anime, episode, src)))
			return
		}

		printPlayback(cmd, anime, episode, src)

		if !lo.Must(cmd.Flags().GetBool("play")) {
			return
		}

		opts := player.Options{
			Binary:     viper.GetString(key.Player),
			URL:        src.URL,
			Title:      fmt.Sprintf("%s - Episode %d", anime.Name, episode.Number),
			Referrer:   src.Referrer,
			Chapters:   player.SkipChapters(src.Intro, src.Outro),
			ChapterDir: where.Cache(),
		}
		if sub, ok := src.Subtitle.Get(); ok {
			opts.Subtitle = sub.File
		}
		if lo.Must(cmd.Flags().GetBool("skip-intro")) && !src.Intro.Empty() {
			opts.Start = src.Intro.End
		}

		cmd.Printf("%s Playing with %s\n", icon.Get(icon.Play), opts.Binary)
		handleErr(player.Play(ctx, opts))
	},
}

// resumeEpisode picks up the latest history entry. Without an explicit
// episode it moves on to the next one, or replays the last when finished.
func resumeEpisode(cmd *cobra.Command, client *stream.Client, number int) (stream.Anime, stream.Episode, int, error) {
	last, err := history.Default().Last()
	if err != nil {
		return stream.Anime{}, stream.Episode{}, 0, err
	}

	entry, ok := last.Get()
	if !ok {
		return stream.Anime{}, stream.Episode{}, 0, errors.New("nothing watched yet, stream a title first")
	}

	list, err := client.Episodes(cmd.Context(), entry.AnimeID)
	if err != nil {
		return stream.Anime{}, stream.Episode{}, 0, err
	}

	if number <= 0 {
		number = entry.Episode
		if _, ok := stream.EpisodeByNumber(list.Episodes, number+1); ok {
			number++
		}
	}

	episode, err := chooseEpisode(list.Episodes, number)
	if err != nil {
		return stream.Anime{}, stream.Episode{}, 0, err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Continuing %s\n", icon.Get(icon.Play), entry.AnimeName)
	anime := stream.Anime{ID: entry.AnimeID, Name: entry.AnimeName}
	return anime, episode, len(list.Episodes), nil
}

func chooseAnime(title string, animes []stream.Anime, pick bool) (stream.Anime, error) {
	if len(animes) == 0 {
		return stream.Anime{}, fmt.Errorf("no anime found for %q", title)
	}

	if !pick || len(animes) == 1 {
		anime, _ := stream.ClosestAnime(title, animes)
		return anime, nil
	}

	options := lo.Map(animes, func(a stream.Anime, _ int) string {
		return fmt.Sprintf("%s (%s, %s)", a.Name, a.Type, util.Quantify(a.Episodes.Sub, "episode", "episodes"))
	})

	var index int
	prompt := &survey.Select{
		Message: "Anime",
		Options: options,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return stream.Anime{}, err
	}
	return animes[index], nil
}

func chooseEpisode(episodes []stream.Episode, number int) (stream.Episode, error) {
	if len(episodes) == 0 {
		return stream.Episode{}, errors.New("the anime has no episodes")
	}

	if number > 0 {
		ep, ok := stream.EpisodeByNumber(episodes, number)
		if !ok {
			return stream.Episode{}, fmt.Errorf("episode %d not found, the anime has %s",
				number, util.Quantify(len(episodes), "episode", "episodes"))
		}
		return ep, nil
	}

	options := lo.Map(episodes, func(e stream.Episode, _ int) string {
		label := fmt.Sprintf("%d. %s", e.Number, e.Title)
		if e.Filler {
			label += " (filler)"
		}
		return label
	})

	var index int
	prompt := &survey.Select{
		Message:  "Episode",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return stream.Episode{}, err
	}
	return episodes[index], nil
}

type playbackOutput struct {
	Anime    string        `json:"anime"`
	AnimeID  string        `json:"animeId"`
	Episode  int           `json:"episode"`
	Server   string        `json:"server"`
	URL      string        `json:"url"`
	Referrer string        `json:"referrer,omitempty"`
	Subtitle *stream.Track `json:"subtitle,omitempty"`
	Intro    *stream.Range `json:"intro,omitempty"`
	Outro    *stream.Range `json:"outro,omitempty"`
}

func playbackJSON(anime stream.Anime, ep stream.Episode, src *stream.PlaybackSource) playbackOutput {
	out := playbackOutput{
		Anime:    anime.Name,
		AnimeID:  anime.ID,
		Episode:  ep.Number,
		Server:   src.Server,
		URL:      src.URL,
		Referrer: src.Referrer,
	}
	if sub, ok := src.Subtitle.Get(); ok {
		out.Subtitle = &sub
	}
	if !src.Intro.Empty() {
		out.Intro = &src.Intro
	}
	if !src.Outro.Empty() {
		out.Outro = &src.Outro
	}
	return out
}

func printPlayback(cmd *cobra.Command, anime stream.Anime, ep stream.Episode, src *stream.PlaybackSource) {
	row := func(name, value string) {
		cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-9s", name)), value)
	}

	cmd.Println(style.Title(fmt.Sprintf("%s · Episode %d", anime.Name, ep.Number)))
	cmd.Println()
	if ep.Title != "" {
		row("Title", ep.Title)
	}
	row("Server", src.Server)
	row("URL", style.Fg(color.Cyan)(src.URL))
	if sub, ok := src.Subtitle.Get(); ok {
		row("Subtitle", fmt.Sprintf("%s %s", sub.Label, style.Faint(sub.File)))
	}
	if !src.Intro.Empty() {
		row("Intro", util.Timestamp(src.Intro.Start)+" - "+util.Timestamp(src.Intro.End))
	}
	if !src.Outro.Empty() {
		row("Outro", util.Timestamp(src.Outro.Start)+" - "+util.Timestamp(src.Outro.End))
	}
}
