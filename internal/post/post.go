package post

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// Post is a markdown document with a frontmatter header.
type Post struct {
	Title        string   `yaml:"title" toml:"title" json:"title" validate:"required,max=250"`
	Subtitle     string   `yaml:"subtitle,omitempty" toml:"subtitle,omitempty" json:"subtitle,omitempty" validate:"max=250"`
	Description  string   `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty" validate:"max=300"`
	Tags         []string `yaml:"tags,omitempty" toml:"tags,omitempty" json:"tags,omitempty" validate:"dive,required,max=50"`
	Crosspost    bool     `yaml:"crosspost" toml:"crosspost" json:"crosspost"`
	Published    bool     `yaml:"published" toml:"published" json:"published"`
	CanonicalURL string   `yaml:"canonical_url,omitempty" toml:"canonical_url,omitempty" json:"canonical_url,omitempty" validate:"omitempty,url"`
	CoverImage   string   `yaml:"cover_image,omitempty" toml:"cover_image,omitempty" json:"cover_image,omitempty" validate:"omitempty,url"`
	Series       string   `yaml:"series,omitempty" toml:"series,omitempty" json:"series,omitempty"`
	Slug         string   `yaml:"slug,omitempty" toml:"slug,omitempty" json:"slug,omitempty"`

	// Body is the markdown after the closing delimiter, trimmed.
	Body string `yaml:"-" toml:"-" json:"-"`

	// Path is the file the post was read from, if any.
	Path string `yaml:"-" toml:"-" json:"path,omitempty"`
}

// Eligible reports whether the post should be cross-posted.
// Only the crosspost and published flags take part.
func (p *Post) Eligible() bool {
	return p.Crosspost || p.Published
}

// Live reports whether platforms should publish the article publicly
// rather than store it as a draft.
func (p *Post) Live() bool {
	return p.Published
}

// SlugOrDefault returns the frontmatter slug, or one derived from the title.
func (p *Post) SlugOrDefault() string {
	if p.Slug != "" {
		return p.Slug
	}
	s, err := slug.Normalize(p.Title)
	if err != nil {
		return ""
	}
	return s
}

// TrimmedTags returns the non-empty tags with surrounding whitespace removed,
// in their original order.
func (p *Post) TrimmedTags() []string {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
