package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/cmd"
	"github.com/thoreinstein/crosspost/internal/paths"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date, and supported platforms of crosspost.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		fmt.Fprintf(w, "crosspost version %s\n", cmd.Version)
		fmt.Fprintf(w, "  commit:    %s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:     %s\n", cmd.Date)
		fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
		fmt.Fprintln(w, "  platforms:")
		for _, name := range paths.Platforms() {
			fmt.Fprintf(w, "    %-10s %s (%s)\n", name+":", paths.DisplayName(name), paths.DefaultEndpoint(name))
		}
	},
}
