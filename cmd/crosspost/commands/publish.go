package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/internal/cli"
	"github.com/thoreinstein/crosspost/internal/cli/prompt"
	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/git"
	"github.com/thoreinstein/crosspost/internal/ledger"
	"github.com/thoreinstein/crosspost/internal/logging"
	"github.com/thoreinstein/crosspost/internal/metrics"
	"github.com/thoreinstein/crosspost/internal/notify"
	"github.com/thoreinstein/crosspost/internal/post"
	"github.com/thoreinstein/crosspost/internal/publish"
)

var (
	publishSince       string
	publishDryRun      bool
	publishPick        bool
	publishJSON        bool
	publishMetricsFile string
)

func init() {
	publishCmd.Flags().StringVar(&publishSince, "since", "",
		"only publish posts added or modified since this git revision")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false,
		"show what would be published without sending anything")
	publishCmd.Flags().BoolVar(&publishPick, "pick", false,
		"choose posts interactively")
	publishCmd.Flags().BoolVar(&publishJSON, "json", false,
		"output the run report as JSON")
	publishCmd.Flags().StringVar(&publishMetricsFile, "metrics-file", "",
		"write run metrics in Prometheus text format (overrides metrics.file)")
	publishCmd.MarkFlagsMutuallyExclusive("pick", "json")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish [path...]",
	Short: "Publish eligible posts to the enabled platforms",
	Long: `Publish eligible posts to every enabled platform.

Paths may be post files or directories. With no paths, every post under
posts_dir is considered; --since narrows that to posts changed between the
revision and HEAD.

A post is eligible when its frontmatter sets crosspost: true or
published: true. Ineligible posts are reported as skipped. A failure on one
platform does not stop the other platform or the remaining posts.

Exit codes:
  0 - Every post was published or skipped
  1 - A post failed to parse or a platform rejected a post
  2 - The run was interrupted`,
	Example: `  # Publish everything changed by the last push
  crosspost publish --since "$BEFORE_SHA"

  # Publish one post to Dev.to only
  crosspost publish -p devto posts/hello.md

  # Preview without sending
  crosspost publish --dry-run`,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	names, err := selectedPlatforms()
	if err != nil {
		return err
	}

	files, err := publishTargets(ctx, args)
	if err != nil {
		return err
	}
	if publishPick {
		files, err = pickPosts(cmd, files)
		if err != nil {
			return err
		}
	}
	logger.Debug("publish targets", "posts", len(files), "platforms", names)

	reg, err := cli.BuildRegistry(names, appConfig, cli.NewHTTPClient(appConfig))
	if err != nil {
		return errors.NewConfigError(err)
	}

	var led *ledger.Ledger
	if appConfig.Ledger.Enabled {
		led, err = ledger.Open(appConfig.Ledger.Path)
		if err != nil {
			return errors.NewConfigError(err)
		}
	}

	metricsFile := appConfig.Metrics.File
	if publishMetricsFile != "" {
		metricsFile = publishMetricsFile
	}
	var m *metrics.Metrics
	if metricsFile != "" {
		m, err = metrics.New()
		if err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	pub := publish.New(publish.Options{
		Registry: reg,
		Ledger:   led,
		Metrics:  m,
		DryRun:   publishDryRun,
	})

	report, runErr := pub.Run(ctx, files)

	if err := writePublishReport(cmd, report); err != nil {
		return err
	}

	if led != nil && !publishDryRun {
		if err := led.Save(); err != nil {
			logger.Error("saving ledger", "path", led.Path(), "error", err)
		}
	}
	if metricsFile != "" {
		if err := m.WriteFile(metricsFile); err != nil {
			logger.Error("writing metrics", "path", metricsFile, "error", err)
		}
	}
	if !publishDryRun {
		sendNotification(ctx, report)
	}

	if runErr != nil {
		return errors.NewSystemError(runErr, "")
	}
	if err := report.Err(); err != nil {
		return errors.NewUserError(err, "Run with -v for details, or 'crosspost doctor' to check credentials")
	}
	return nil
}

// publishTargets resolves the post files a publish run considers.
func publishTargets(ctx context.Context, args []string) ([]string, error) {
	if len(args) > 0 {
		return expandPaths(args)
	}

	dir := appConfig.PostsDir
	if publishSince == "" {
		return discoverPosts(dir)
	}

	changed, err := git.ChangedFiles(ctx, ".", publishSince, "HEAD")
	if errors.Is(err, git.ErrNoBase) {
		logging.FromContext(ctx).Warn("no base revision; considering every post", "since", publishSince)
		return discoverPosts(dir)
	}
	if err != nil {
		return nil, errors.NewUserError(err, "--since must name a revision reachable from HEAD")
	}
	return post.Within(changed, dir), nil
}

// expandPaths replaces directory arguments with the posts they contain.
func expandPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.NewUserError(errors.Wrapf(err, "reading %s", arg), "")
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := discoverPosts(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func discoverPosts(dir string) ([]string, error) {
	files, err := post.Discover(dir)
	if err != nil {
		return nil, errors.NewUserError(err, "Set posts_dir in crosspost.yaml or pass post paths")
	}
	return files, nil
}

// pickPosts narrows files to those the user selects. Files that fail to
// parse are not offered but stay in the result so the run reports them.
func pickPosts(cmd *cobra.Command, files []string) ([]string, error) {
	parser := post.NewParser()

	var invalid []string
	posts := make([]*post.Post, 0, len(files))
	for _, f := range files {
		p, err := parser.ParseFile(f)
		if err != nil {
			invalid = append(invalid, f)
			continue
		}
		posts = append(posts, p)
	}
	if len(posts) == 0 {
		return invalid, nil
	}

	var selected []*post.Post
	var err error
	if logging.IsTTY(os.Stdin) && logging.IsTTY(cmd.OutOrStdout()) {
		selected, err = prompt.Pick(posts)
	} else {
		selected, err = prompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.OutOrStdout()).SelectPosts(posts)
	}
	if err != nil {
		return nil, errors.NewUserError(err, "")
	}

	paths := make([]string, 0, len(selected)+len(invalid))
	for _, p := range selected {
		paths = append(paths, p.Path)
	}
	return append(paths, invalid...), nil
}

func writePublishReport(cmd *cobra.Command, report *publish.Report) error {
	out := cmd.OutOrStdout()
	var err error
	switch {
	case publishJSON:
		err = report.WriteJSON(out)
	case quiet:
		return nil
	default:
		err = report.WriteText(out)
	}
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing report"), "")
	}
	return nil
}

// sendNotification delivers the run summary. Failures are logged only.
func sendNotification(ctx context.Context, report *publish.Report) {
	if len(appConfig.Notify.URLs) == 0 {
		return
	}
	logger := logging.FromContext(ctx)

	n, err := notify.New(appConfig.Notify.URLs, 0)
	if err != nil {
		logger.Warn("notifications disabled", "error", err)
		return
	}
	if err := n.Send(ctx, report.Notification()); err != nil {
		logger.Warn("notification failed", "error", err)
	}
}
