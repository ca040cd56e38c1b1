package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/post"
	"github.com/thoreinstein/crosspost/internal/validator"
)

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Check posts for frontmatter problems",
	Long: `Parse and validate posts without contacting any platform.

Errors (missing title, malformed frontmatter, invalid URLs) make the
command fail. Warnings flag content a platform will rewrite, such as
more than four tags or tags Dev.to does not accept.

With no paths, every post under posts_dir is validated.`,
	Example: `  # Validate every post
  crosspost validate

  # Validate one post, JSON output for CI annotations
  crosspost validate --json posts/hello.md`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var files []string
	var err error
	if len(args) > 0 {
		files, err = expandPaths(args)
	} else {
		files, err = discoverPosts(appConfig.PostsDir)
	}
	if err != nil {
		return err
	}

	results := validatePosts(files)

	format := validator.FormatText
	if validateJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(results...); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing validation report"), "")
	}

	var invalid int
	for _, r := range results {
		if r.HasErrors() {
			invalid++
		}
	}
	if invalid > 0 {
		return errors.NewUserError(errors.Newf("%d of %d post(s) invalid", invalid, len(results)), "")
	}
	return nil
}

// validatePosts parses and validates each file. A parse failure becomes an
// error issue on that file's result.
func validatePosts(files []string) []*validator.Result {
	parser := post.NewParser()
	v := post.NewValidator()

	results := make([]*validator.Result, 0, len(files))
	for _, f := range files {
		p, err := parser.ParseFile(f)
		if err != nil {
			r := &validator.Result{Path: f}
			r.AddError("frontmatter", parseMessage(err), nil)
			results = append(results, r)
			continue
		}
		results = append(results, v.Validate(p))
	}
	return results
}

// parseMessage drops the path prefix a ParseError carries, since the
// report already groups issues by path.
func parseMessage(err error) string {
	var pe *post.ParseError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
