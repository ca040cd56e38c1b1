package post

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/k3a/html2text"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// DefaultSummaryLength is the description length used when a post has no
// description of its own.
const DefaultSummaryLength = 150

// md renders GitHub-flavored markdown. Raw HTML is omitted from the output.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Summary returns the post description, falling back to the first
// paragraph of the body as plain text truncated to maxLen runes.
// A maxLen of zero or less uses DefaultSummaryLength.
func (p *Post) Summary(maxLen int) (string, error) {
	if p.Description != "" {
		return p.Description, nil
	}
	if maxLen <= 0 {
		maxLen = DefaultSummaryLength
	}

	para, err := firstParagraph([]byte(p.Body))
	if err != nil {
		return "", err
	}
	return truncate(para, maxLen), nil
}

// firstParagraph renders the first top-level paragraph of src as plain text.
func firstParagraph(src []byte) (string, error) {
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() != ast.KindParagraph {
			continue
		}
		var buf bytes.Buffer
		if err := md.Renderer().Render(&buf, src, n); err != nil {
			return "", errors.Wrap(err, "rendering paragraph")
		}
		if s := collapse(html2text.HTML2Text(buf.String())); s != "" {
			return s, nil
		}
	}
	return "", nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most maxLen runes, preferring a word boundary,
// and appends "..." when anything was removed.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return string([]rune(s)[:maxLen])
	}
	cut := string([]rune(s)[:maxLen-len(ellipsis)])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + ellipsis
}
