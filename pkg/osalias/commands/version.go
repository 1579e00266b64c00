package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func BuildVersionCmd() *cobra.Command {
	var quiet bool
	var verbose bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show opni-osalias version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(out, "unknown")
				return
			}
			if verbose {
				fmt.Fprintln(out, info.String())
				return
			}
			settings := lo.KeyBy(info.Settings, func(v debug.BuildSetting) string {
				return v.Key
			})
			var noun string
			var version string
			if info.Main.Version == "(devel)" || info.Main.Version == "" {
				noun = "revision"
				version = settings["vcs.revision"].Value
			} else {
				noun = "version"
				version = info.Main.Version
			}
			if quiet {
				fmt.Fprintln(out, version)
				return
			}
			fmt.Fprintf(out, "opni-osalias, %s %s\n", noun, version)
			fmt.Fprintf(out, "  go version: %s\n", info.GoVersion)
		},
	}
	versionCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version or revision")
	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose version and dependency information")
	return versionCmd
}
