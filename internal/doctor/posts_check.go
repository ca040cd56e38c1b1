package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/crosspost/internal/post"
)

// PostsCheck scans the posts directory and reports unparseable posts.
type PostsCheck struct {
	dir    string
	parser *post.Parser
}

var _ Check = (*PostsCheck)(nil)

// NewPostsCheck creates a check over the posts in dir.
func NewPostsCheck(dir string) *PostsCheck {
	return &PostsCheck{dir: dir, parser: post.NewParser()}
}

// Name returns the unique identifier for this check.
func (c *PostsCheck) Name() string {
	return "posts"
}

// Category returns the grouping for this check.
func (c *PostsCheck) Category() string {
	return "content"
}

// Run parses the header of every post under the directory.
func (c *PostsCheck) Run() *CheckResult {
	files, err := post.Discover(c.dir)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot read posts directory: %v", err),
			Details:  map[string]any{"dir": c.dir},
			FixHint:  "mkdir -p " + c.dir + " or set posts_dir in crosspost.yaml",
		}
	}

	var eligible int
	invalid := make(map[string]string)
	for _, path := range files {
		p, err := c.parseHeader(path)
		if err != nil {
			invalid[path] = err.Error()
			continue
		}
		if p.Eligible() {
			eligible++
		}
	}

	details := map[string]any{
		"dir":      c.dir,
		"total":    len(files),
		"eligible": eligible,
	}

	switch {
	case len(invalid) > 0:
		details["invalid"] = invalid
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d of %d post(s) cannot be parsed", len(invalid), len(files)),
			Details:  details,
			FixHint:  "run 'crosspost validate' for details",
		}
	case len(files) == 0:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "no posts found",
			Details:  details,
			FixHint:  "create one with 'crosspost new'",
		}
	default:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("%d post(s), %d eligible", len(files), eligible),
			Details:  details,
		}
	}
}

func (c *PostsCheck) parseHeader(path string) (*post.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.parser.ParseHeader(f, path)
}
