package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/post"
)

var (
	listJSON     bool
	listEligible bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false,
		"output as JSON")
	listCmd.Flags().BoolVar(&listEligible, "eligible", false,
		"only show posts that would be published")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List posts and their eligibility",
	Long: `List the posts under posts_dir with their title, state, and tags.

State is "published" (published: true), "draft" (crosspost: true only), or
"skip" (neither flag set). Posts that cannot be parsed are listed as
"invalid".`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listEntry is one row of the list output.
type listEntry struct {
	Path     string   `json:"path"`
	Title    string   `json:"title,omitempty"`
	State    string   `json:"state"`
	Eligible bool     `json:"eligible"`
	Tags     []string `json:"tags,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	files, err := discoverPosts(appConfig.PostsDir)
	if err != nil {
		return err
	}

	entries := listEntries(files)
	if listEligible {
		kept := entries[:0]
		for _, e := range entries {
			if e.Eligible {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	if listJSON {
		return outputListJSON(cmd.OutOrStdout(), entries)
	}
	return outputListText(cmd.OutOrStdout(), entries)
}

func listEntries(files []string) []listEntry {
	parser := post.NewParser()
	entries := make([]listEntry, 0, len(files))
	for _, f := range files {
		p, err := readHeader(parser, f)
		if err != nil {
			entries = append(entries, listEntry{Path: f, State: "invalid", Error: parseMessage(err)})
			continue
		}
		entries = append(entries, listEntry{
			Path:     f,
			Title:    p.Title,
			State:    postState(p),
			Eligible: p.Eligible(),
			Tags:     p.TrimmedTags(),
		})
	}
	return entries
}

func readHeader(parser *post.Parser, path string) (*post.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parser.ParseHeader(f, path)
}

func postState(p *post.Post) string {
	switch {
	case p.Live():
		return "published"
	case p.Eligible():
		return "draft"
	default:
		return "skip"
	}
}

func outputListJSON(w io.Writer, entries []listEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputListText(w io.Writer, entries []listEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No posts found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tTITLE\tTAGS\tPATH")
	for _, e := range entries {
		title := truncate(e.Title, 50)
		if e.Error != "" {
			title = e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.State, title, strings.Join(e.Tags, ","), e.Path)
	}
	return tw.Flush()
}
