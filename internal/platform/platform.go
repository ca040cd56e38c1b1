package platform

import (
	"context"

	"github.com/thoreinstein/crosspost/internal/post"
)

// Platform defines the contract for publishing targets.
// Each supported platform (Dev.to, Hashnode) implements this interface.
//
// Implementations must be safe for concurrent use: a single instance
// serves every post in a run and may be called from several goroutines.
type Platform interface {
	// Name returns the platform identifier (devto, hashnode).
	// The name must match one of the constants in the paths package.
	Name() string

	// DisplayName returns a human-readable platform name.
	DisplayName() string

	// Publish sends one article in a single request and returns where it
	// landed. Errors are classified with the sentinels in this package.
	Publish(ctx context.Context, article *Article) (*Result, error)
}

// Article is the platform-neutral request built from a post.
type Article struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description string   `json:"description,omitempty"`
	Body        string   `json:"body_markdown"`
	Tags        []string `json:"tags,omitempty"`

	// CanonicalURL is empty when the post has none; clients then omit the
	// field so the platform's own URL becomes canonical.
	CanonicalURL string `json:"canonical_url,omitempty"`
	CoverImage   string `json:"cover_image,omitempty"`
	Series       string `json:"series,omitempty"`

	// Published selects a public article over a draft.
	Published bool `json:"published"`
}

// NewArticle builds the request for p. The description falls back to the
// first paragraph of the body when the frontmatter has none.
func NewArticle(p *post.Post) (*Article, error) {
	desc, err := p.Summary(post.DefaultSummaryLength)
	if err != nil {
		return nil, err
	}
	return &Article{
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Description:  desc,
		Body:         p.Body,
		Tags:         p.TrimmedTags(),
		CanonicalURL: p.CanonicalURL,
		CoverImage:   p.CoverImage,
		Series:       p.Series,
		Published:    p.Live(),
	}, nil
}

// Result describes an article created on a platform.
type Result struct {
	Platform string `json:"platform" yaml:"platform"`
	ID       string `json:"id" yaml:"id"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Slug     string `json:"slug,omitempty" yaml:"slug,omitempty"`
	Draft    bool   `json:"draft" yaml:"draft"`
}
