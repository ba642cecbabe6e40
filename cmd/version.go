package cmd

import (
	"runtime"
	"strings"
	"text/template"

	"github.com/aiko-cli/aiko/color"
	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/style"
	"github.com/aiko-cli/aiko/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version")
	versionCmd.Flags().BoolP("check", "c", false, "Look for a newer release")
}

var versionTemplate = lo.Must(template.New("version").Funcs(map[string]any{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"accent": style.Fg(color.Orange),
}).Parse(`{{ accent "▇▇▇" }} {{ accent .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		if lo.Must(cmd.Flags().GetBool("check")) {
			res, err := version.Default().Check(cmd.Context())
			handleErr(err)
			if res.UpdateAvailable() {
				cmd.Printf("%s is available (you have %s)\n%s\n", style.Bold(res.Latest), res.Current, style.Faint(constant.ReleasesURL))
			} else {
				success(cmd, "%s is the latest version", res.Current)
			}
			return
		}

		defer version.Notify(cmd.Context(), cmd.OutOrStdout(), version.Default())

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App, Version, OS, Arch, BuiltAt, BuiltBy, Revision string
		}{
			App:      constant.Aiko,
			Version:  constant.Version,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Revision: constant.Revision,
		}))
	},
}
