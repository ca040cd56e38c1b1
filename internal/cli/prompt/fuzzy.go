package prompt

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/post"
)

// Pick opens a fuzzy multi-select over posts. Tab marks entries; Enter
// confirms. Aborting (Esc, Ctrl+C) returns ErrSelectionCancelled.
func Pick(posts []*post.Post) ([]*post.Post, error) {
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}

	idxs, err := fuzzyfinder.FindMulti(
		posts,
		func(i int) string {
			return fmt.Sprintf("%s %s (%s)", eligibleMark(posts[i]), posts[i].Title, posts[i].Path)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return Preview(posts[i])
		}),
		fuzzyfinder.WithHeader("Tab to mark posts, Enter to publish"),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	selected := make([]*post.Post, 0, len(idxs))
	for _, i := range idxs {
		selected = append(selected, posts[i])
	}
	return selected, nil
}

func eligibleMark(p *post.Post) string {
	if p.Eligible() {
		return "●"
	}
	return "○"
}

// Preview renders the frontmatter fields shown beside a post.
func Preview(p *post.Post) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", p.Title)
	fmt.Fprintf(&sb, "Path: %s\n", p.Path)
	if len(p.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(p.TrimmedTags(), ", "))
	}
	fmt.Fprintf(&sb, "Crosspost: %t\nPublished: %t\n", p.Crosspost, p.Published)
	if p.CanonicalURL != "" {
		fmt.Fprintf(&sb, "Canonical: %s\n", p.CanonicalURL)
	}
	if !p.Eligible() {
		sb.WriteString("\nNot eligible: set crosspost or published to true.\n")
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.Description)
	}
	return sb.String()
}
