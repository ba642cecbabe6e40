package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/auth"
	"github.com/aiko-cli/aiko/color"
	"github.com/aiko-cli/aiko/config"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/internal/sync"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/network"
	"github.com/aiko-cli/aiko/style"
	"github.com/aiko-cli/aiko/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(anilistCmd)
	anilistCmd.AddCommand(anilistAuthCmd, anilistLogoutCmd, anilistProfileCmd, anilistListCmd, anilistProgressCmd, anilistSyncCmd)

	anilistListCmd.Flags().StringP("status", "s", "", "Only the list with this status")
	anilistListCmd.Flags().BoolP("json", "j", false, "Print the lists as JSON")
	anilistProgressCmd.Flags().StringP("status", "s", "", "Also set the list status")

	completeStatus := func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(anilist.MediaListStatuses(), func(s anilist.MediaListStatus, _ int) string {
			return string(s)
		}), cobra.ShellCompDirectiveNoFileComp
	}
	lo.Must0(anilistListCmd.RegisterFlagCompletionFunc("status", completeStatus))
	lo.Must0(anilistProgressCmd.RegisterFlagCompletionFunc("status", completeStatus))
}

var anilistCmd = &cobra.Command{
	Use:   "anilist",
	Short: "Anilist account commands",
}

var anilistAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in to Anilist in the browser",
	Long: fmt.Sprintf("Open the Anilist authorization page and wait for the redirect on port %d.\n"+
		"The token is saved in the config file, or the system keyring when %s is on.", auth.Port, key.AnilistKeyring),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := tokenStore()

		_, err := auth.Login(cmd.Context(), store, auth.LoginOptions{
			ClientID: viper.GetString(key.AnilistClientID),
			OnURL: func(u string) {
				cmd.Printf("%s Opening the browser. If it does not open, visit:\n%s\n", icon.Get(icon.Info), style.Fg(color.Cyan)(u))
			},
		})
		if errors.Is(err, auth.ErrAlreadyAuthenticated) {
			cmd.Printf("%s Already logged in, run %s first to switch accounts\n", icon.Get(icon.Info), style.Bold("aiko anilist logout"))
			return
		}
		handleErr(err)

		viewer, err := anilistClient().Viewer(cmd.Context())
		if err != nil {
			logger.Warnf("viewer: %v", err)
			success(cmd, "Logged in")
			return
		}

		if err := config.Current().SetUsername(viewer.Name); err != nil {
			logger.Warnf("save username: %v", err)
		}
		success(cmd, "Logged in as %s", style.Fg(color.Purple)(viewer.Name))
	},
}

var anilistLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the Anilist token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Logout(tokenStore()))
		handleErr(config.Current().SetUsername(""))
		success(cmd, "Logged out")
	},
}

var anilistProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the profile of the logged in user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		user, err := anilistClient().Viewer(cmd.Context())
		handleErr(err)

		stats := user.Statistics.Anime
		row := func(name, value string) {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-16s", name)), value)
		}

		cmd.Println(style.Title(user.Name))
		cmd.Println()
		row("Anime", strconv.Itoa(stats.Count))
		row("Episodes watched", strconv.Itoa(stats.EpisodesWatched))
		row("Days watched", fmt.Sprintf("%.1f", float64(stats.MinutesWatched)/60/24))
		row("Mean score", fmt.Sprintf("%.1f", stats.MeanScore))
		row("Profile", style.Accented(user.SiteURL))
	},
}

var anilistListCmd = &cobra.Command{
	Use:   "list [username]",
	Short: "Show a user's anime lists",
	Long:  "Show a user's anime lists. Defaults to " + key.AnilistUsername + ".",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := config.Current().Settings().Username
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			handleErr(errors.New("no username given and " + key.AnilistUsername + " is not set"))
		}

		lists, err := anilistClient().UserAnimeList(cmd.Context(), name)
		handleErr(err)

		if raw := lo.Must(cmd.Flags().GetString("status")); raw != "" {
			status, err := anilist.ParseMediaListStatus(raw)
			handleErr(err)
			lists = lo.Filter(lists, func(l anilist.List, _ int) bool {
				return l.Status == status
			})
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJSON(cmd.OutOrStdout(), lists))
			return
		}

		width := util.TerminalWidth(80)
		for i, list := range lists {
			cmd.Printf("%s %s\n", style.Title(list.Name), style.Faint(util.Quantify(len(list.Entries), "entry", "entries")))
			for _, entry := range list.Entries {
				if entry.Media == nil {
					continue
				}
				progress := strconv.Itoa(entry.Progress)
				if entry.Media.Episodes > 0 {
					progress += "/" + strconv.Itoa(entry.Media.Episodes)
				}
				cmd.Printf("  %s %s %s\n",
					style.Fg(color.Yellow)(fmt.Sprintf("%7s", progress)),
					util.Truncate(entry.Media.Name(), util.Clamp(width-20, 10, width)),
					style.Faint(fmt.Sprintf("#%d", entry.Media.ID)),
				)
			}
			if i < len(lists)-1 {
				cmd.Println()
			}
		}
	},
}

var anilistProgressCmd = &cobra.Command{
	Use:     "progress <anilist id> <episode>",
	Short:   "Set the watched episode count of an anime on your list",
	Example: "  aiko anilist progress 154587 12 --status completed",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		mediaID, err := strconv.Atoi(args[0])
		if err != nil || mediaID <= 0 {
			handleErr(fmt.Errorf("invalid anilist id %q", args[0]))
		}

		progress, err := strconv.Atoi(args[1])
		if err != nil || progress < 0 {
			handleErr(fmt.Errorf("invalid episode %q", args[1]))
		}

		var status anilist.MediaListStatus
		if raw := lo.Must(cmd.Flags().GetString("status")); raw != "" {
			status, err = anilist.ParseMediaListStatus(raw)
			handleErr(err)
		}

		client := anilistClient()
		queue := sync.Default()
		replayQueued(cmd, queue, client)

		entry, err := client.UpdateMediaListEntry(cmd.Context(), mediaID, progress, status)
		if deferrable(err) {
			logger.Warnf("update media %d: %v", mediaID, err)
			handleErr(queue.Add(mediaID, progress, status))
			cmd.Printf("%s Anilist is unreachable, the update will be sent next time\n", icon.Get(icon.Warn))
			return
		}
		handleErr(err)

		if err := queue.Drop(mediaID); err != nil {
			logger.Warnf("drop queued update for media %d: %v", mediaID, err)
		}

		title := strconv.Itoa(mediaID)
		if entry.Media != nil {
			title = entry.Media.Name()
		}
		success(cmd, "%s progress set to %d %s",
			style.Fg(color.Purple)(title), entry.Progress,
			style.Faint(strings.ToLower(string(entry.Status))))
	},
}

var anilistSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Send progress updates that failed earlier",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		queue := sync.Default()

		pending, err := queue.Pending()
		handleErr(err)
		if len(pending) == 0 {
			cmd.Println(style.Faint("Nothing to send"))
			return
		}

		sent, err := queue.Reconcile(cmd.Context(), anilistClient())
		success(cmd, "sent %s", util.Quantify(sent, "update", "updates"))
		handleErr(err)
	},
}

// replayQueued sends earlier failed updates first so they are not
// overwritten out of order.
func replayQueued(cmd *cobra.Command, queue *sync.Queue, client *anilist.Client) {
	pending, err := queue.Pending()
	if err != nil || len(pending) == 0 {
		return
	}

	sent, err := queue.Reconcile(cmd.Context(), client)
	if err != nil {
		logger.Warnf("replay queued updates: %v", err)
	}
	if sent > 0 {
		cmd.Printf("%s Sent %s queued earlier\n", icon.Get(icon.Success), util.Quantify(sent, "update", "updates"))
	}
}

// deferrable reports whether err looks like a transient outage rather
// than a rejected update.
func deferrable(err error) bool {
	if err == nil {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var statusErr *network.StatusError
	return errors.As(err, &statusErr) && (statusErr.Code >= http.StatusInternalServerError || statusErr.Code == http.StatusTooManyRequests)
}
