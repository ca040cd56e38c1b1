package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/internal/editor"
	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/paths"
	"github.com/thoreinstein/crosspost/internal/post"
	"github.com/thoreinstein/crosspost/pkg/fileutil"
)

var (
	newNoEdit    bool
	newTOML      bool
	newCrosspost bool
	newTags      []string
	newDir       string
)

func init() {
	newCmd.Flags().BoolVar(&newNoEdit, "no-edit", false,
		"do not open the post in $EDITOR")
	newCmd.Flags().BoolVar(&newTOML, "toml", false,
		"write TOML (+++) frontmatter instead of YAML")
	newCmd.Flags().BoolVar(&newCrosspost, "crosspost", false,
		"mark the post for cross-posting as a draft")
	newCmd.Flags().StringSliceVarP(&newTags, "tag", "t", nil,
		"tags for the post (repeatable)")
	newCmd.Flags().StringVar(&newDir, "dir", "",
		"directory for the post (default: posts_dir)")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new post",
	Long: `Create a new post file with frontmatter and open it in $EDITOR.

The file name is derived from the title. The post starts with both
crosspost and published false, so it is not sent until you opt in.`,
	Example: `  crosspost new "Understanding Go interfaces" -t go -t beginners
  crosspost new "Release notes" --no-edit --crosspost`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	dir := newDir
	if dir == "" {
		dir = appConfig.PostsDir
	}

	path, err := createPost(dir, title)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)

	if newNoEdit {
		return nil
	}
	if err := editor.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR, or pass --no-edit")
	}
	return nil
}

// createPost writes a new post for title under dir and returns its path.
// An existing file is never overwritten.
func createPost(dir, title string) (string, error) {
	p := &post.Post{
		Title:     title,
		Tags:      newTags,
		Crosspost: newCrosspost,
		Body:      "Write your post here.",
	}

	name := p.SlugOrDefault()
	if name == "" {
		return "", errors.NewUserError(errors.Newf("cannot derive a file name from %q", title), "Use a title with letters or digits")
	}
	path := filepath.Join(dir, name+post.Ext)

	if _, err := os.Stat(path); err == nil {
		return "", errors.NewUserError(errors.Newf("%s already exists", path), "Choose a different title")
	}

	var data []byte
	var err error
	if newTOML {
		data, err = post.FormatTOML(p)
	} else {
		data, err = post.Format(p)
	}
	if err != nil {
		return "", errors.NewSystemError(errors.Wrap(err, "formatting post"), "")
	}

	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return "", errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return "", errors.NewSystemError(errors.Wrapf(err, "writing %s", path), "")
	}
	return path, nil
}
