package post

import (
	"bytes"
	"io"
	"strings"

	"github.com/thoreinstein/crosspost/pkg/fileutil"
	"github.com/thoreinstein/crosspost/pkg/frontmatter"
)

// Parser reads posts from markdown files.
type Parser struct{}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses the post at path.
func (p *Parser) ParseFile(path string) (*Post, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return p.ParseBytes(data, path)
}

// Parse reads and parses a post from the given reader.
// The path parameter is used for error context only.
func (p *Parser) Parse(r io.Reader, path string) (*Post, error) {
	data, err := io.ReadAll(io.LimitReader(r, fileutil.MaxFileSize+1))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(data) > fileutil.MaxFileSize {
		return nil, &ParseError{Path: path, Err: fileutil.ErrFileTooLarge}
	}
	return p.ParseBytes(data, path)
}

// ParseBytes parses post content from bytes.
// Frontmatter is required and must carry a non-blank title.
func (p *Parser) ParseBytes(data []byte, path string) (*Post, error) {
	var post Post
	body, err := frontmatter.MustParse(bytes.NewReader(data), &post)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return nil, &ParseError{Path: path, Err: ErrMissingTitle}
	}

	post.Body = strings.TrimSpace(string(body))
	post.Path = path
	return &post, nil
}

// ParseHeader parses only the frontmatter, stopping at the closing delimiter.
// Body is left empty. Used for listing posts.
func (p *Parser) ParseHeader(r io.Reader, path string) (*Post, error) {
	var post Post
	if err := frontmatter.ParseHeader(r, &post); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return nil, &ParseError{Path: path, Err: ErrMissingTitle}
	}
	post.Path = path
	return &post, nil
}

// Format serializes the post back to a document with YAML frontmatter.
func Format(p *Post) ([]byte, error) {
	return frontmatter.Format(p, p.Body)
}

// FormatTOML serializes the post with TOML frontmatter.
func FormatTOML(p *Post) ([]byte, error) {
	return frontmatter.FormatTOML(p, p.Body)
}
