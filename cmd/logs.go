package cmd

import (
	"errors"
	"path/filepath"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/style"
	"github.com/aiko-cli/aiko/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().BoolP("latest", "l", false, "Print the newest log file")
	logsCmd.Flags().BoolP("path", "p", false, "Print the path instead of the contents")
}

var logsCmd = &cobra.Command{
	Use:   "logs [file]",
	Short: "List the daily log files or print one",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		files, _ := log.Files()
		return files, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		files, err := log.Files()
		handleErr(err)

		var name string
		switch {
		case len(args) == 1:
			name = args[0]
			if !lo.Contains(files, name) {
				handleErr(errors.New("no log file named " + name))
			}
		case lo.Must(cmd.Flags().GetBool("latest")):
			if len(files) == 0 {
				handleErr(errors.New("there are no log files"))
			}
			name = files[0]
		default:
			if len(files) == 0 {
				cmd.Println(icon.Get(icon.Info) + " There are no log files")
				if !viper.GetBool(key.LogsWrite) {
					cmd.Printf("  enable them with %s\n", style.Bold("aiko config set "+key.LogsWrite+" true"))
				}
				return
			}
			for _, f := range files {
				cmd.Println(f)
			}
			return
		}

		path := filepath.Join(where.Logs(), name)
		if lo.Must(cmd.Flags().GetBool("path")) {
			cmd.Println(path)
			return
		}

		data, err := filesystem.API().ReadFile(path)
		handleErr(err)
		_, err = cmd.OutOrStdout().Write(data)
		handleErr(err)
	},
}
