package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/cmd/crosspost/commands/flags"
	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/ledger"
	"github.com/thoreinstein/crosspost/internal/paths"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show posts recorded in the ledger",
	Long: `Show the (post, platform) pairs recorded in the publication ledger.

The ledger is only written when ledger.enabled is true. Use --platform to
limit the listing to specific platforms.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	l, err := ledger.Open(appConfig.Ledger.Path)
	if err != nil {
		return errors.NewConfigError(err)
	}

	entries := filterEntries(l.Entries(), flags.GetPlatformFlag())

	if statusJSON {
		return outputStatusJSON(cmd.OutOrStdout(), entries)
	}
	return outputStatusText(cmd.OutOrStdout(), l.Path(), appConfig.Ledger.Enabled, entries)
}

// filterEntries keeps entries for the given platforms; none keeps all.
func filterEntries(entries []ledger.Entry, platforms []string) []ledger.Entry {
	if len(platforms) == 0 {
		return entries
	}
	kept := make([]ledger.Entry, 0, len(entries))
	for _, e := range entries {
		if slices.Contains(platforms, e.Platform) {
			kept = append(kept, e)
		}
	}
	return kept
}

func outputStatusJSON(w io.Writer, entries []ledger.Entry) error {
	if entries == nil {
		entries = []ledger.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputStatusText(w io.Writer, path string, enabled bool, entries []ledger.Entry) error {
	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Fprintf(w, "Ledger: %s (%s)\n", path, state)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No publications recorded.")
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POST\tPLATFORM\tPUBLISHED\tURL")
	for _, e := range entries {
		when := e.PublishedAt.Local().Format(time.DateTime)
		url := e.URL
		if e.Draft {
			url += " (draft)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Post, paths.DisplayName(e.Platform), when, url)
	}
	return tw.Flush()
}
