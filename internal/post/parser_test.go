package post

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/thoreinstein/crosspost/pkg/fileutil"
	"github.com/thoreinstein/crosspost/pkg/frontmatter"
)

const fullPost = `---
title: Hello
subtitle: A first post
description: Saying hello to the world
tags:
  - a
  - b
crosspost: true
published: false
canonical_url: https://blog.example.com/hello
cover_image: https://blog.example.com/hello.png
series: Greetings
slug: hello-world
---
# Hello

This is the body.
`

const tomlPost = `+++
title = "TOML Post"
tags = ["go", "toml"]
published = true
+++
Body in TOML land.
`

func TestParser_ParseBytes(t *testing.T) {
	p := NewParser()

	got, err := p.ParseBytes([]byte(fullPost), "posts/hello.md")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	want := &Post{
		Title:        "Hello",
		Subtitle:     "A first post",
		Description:  "Saying hello to the world",
		Tags:         []string{"a", "b"},
		Crosspost:    true,
		Published:    false,
		CanonicalURL: "https://blog.example.com/hello",
		CoverImage:   "https://blog.example.com/hello.png",
		Series:       "Greetings",
		Slug:         "hello-world",
		Body:         "# Hello\n\nThis is the body.",
		Path:         "posts/hello.md",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBytes() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestParser_ParseBytes_TOML(t *testing.T) {
	got, err := NewParser().ParseBytes([]byte(tomlPost), "toml.md")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if got.Title != "TOML Post" || !got.Published || got.Crosspost {
		t.Errorf("unexpected post: %+v", got)
	}
	if !reflect.DeepEqual(got.Tags, []string{"go", "toml"}) {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.Body != "Body in TOML land." {
		t.Errorf("Body = %q", got.Body)
	}
}

func TestParser_ParseBytes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing title",
			content: "---\ncrosspost: true\ntags: [a]\n---\nbody\n",
			wantErr: ErrMissingTitle,
		},
		{
			name:    "blank title",
			content: "---\ntitle: \"   \"\npublished: true\n---\n",
			wantErr: ErrMissingTitle,
		},
		{
			name:    "no frontmatter",
			content: "# Just markdown\n",
			wantErr: frontmatter.ErrMissingFrontmatter,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: frontmatter.ErrMissingFrontmatter,
		},
		{
			name:    "unclosed frontmatter",
			content: "---\ntitle: Hello\n",
			wantErr: frontmatter.ErrUnclosedFrontmatter,
		},
		{
			name:    "malformed yaml",
			content: "---\ntitle: [unclosed\n---\n",
			wantErr: frontmatter.ErrInvalidYAML,
		},
		{
			name:    "wrong type for flag",
			content: "---\ntitle: Hello\ncrosspost: maybe\n---\n",
			wantErr: frontmatter.ErrInvalidYAML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseBytes([]byte(tt.content), "bad.md")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if perr.Path != "bad.md" {
				t.Errorf("ParseError.Path = %q, want bad.md", perr.Path)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.md")
	if err := os.WriteFile(path, []byte(fullPost), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if got.Path != path {
		t.Errorf("Path = %q, want %q", got.Path, path)
	}

	_, err = NewParser().ParseFile(filepath.Join(dir, "missing.md"))
	var perr *ParseError
	if !errors.As(err, &perr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ParseError wrapping ErrNotExist", err)
	}
}

func TestParser_ParseFile_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.md")
	content := "---\ntitle: Huge\n---\n" + strings.Repeat("x", fileutil.MaxFileSize)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewParser().ParseFile(path)
	if !errors.Is(err, fileutil.ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
}

func TestParser_Parse_Reader(t *testing.T) {
	got, err := NewParser().Parse(strings.NewReader(fullPost), "reader.md")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestParser_ParseHeader(t *testing.T) {
	got, err := NewParser().ParseHeader(strings.NewReader(fullPost), "hello.md")
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if got.Title != "Hello" || got.Body != "" {
		t.Errorf("ParseHeader() = %+v, want title only", got)
	}

	_, err = NewParser().ParseHeader(strings.NewReader("---\ncrosspost: true\n---\n"), "x.md")
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("ParseHeader() missing title error = %v", err)
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Path: "posts/a.md", Err: ErrMissingTitle}
	if got := err.Error(); got != "parsing post posts/a.md: missing required field: title" {
		t.Errorf("Error() = %q", got)
	}
	err = &ParseError{Err: ErrMissingTitle}
	if got := err.Error(); got != "parsing post: missing required field: title" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	formats := map[string]func(*Post) ([]byte, error){
		"yaml": Format,
		"toml": FormatTOML,
	}

	original := &Post{
		Title:        "Round Trip",
		Tags:         []string{"go", "testing", "frontmatter"},
		Crosspost:    true,
		Published:    true,
		CanonicalURL: "https://example.com/round-trip",
		Body:         "Some *markdown* body.",
	}

	for name, format := range formats {
		t.Run(name, func(t *testing.T) {
			data, err := format(original)
			if err != nil {
				t.Fatalf("format error = %v", err)
			}

			got, err := NewParser().ParseBytes(data, "")
			if err != nil {
				t.Fatalf("ParseBytes() error = %v\n%s", err, data)
			}

			if got.Title != original.Title {
				t.Errorf("Title = %q, want %q", got.Title, original.Title)
			}
			if !reflect.DeepEqual(got.Tags, original.Tags) {
				t.Errorf("Tags = %v, want %v", got.Tags, original.Tags)
			}
			if got.Crosspost != original.Crosspost || got.Published != original.Published {
				t.Errorf("flags = %v/%v, want %v/%v", got.Crosspost, got.Published, original.Crosspost, original.Published)
			}
			if got.CanonicalURL != original.CanonicalURL {
				t.Errorf("CanonicalURL = %q", got.CanonicalURL)
			}
			if got.Body != original.Body {
				t.Errorf("Body = %q, want %q", got.Body, original.Body)
			}
		})
	}
}

func TestFormat_FlagsAlwaysWritten(t *testing.T) {
	data, err := Format(&Post{Title: "Draft"})
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "crosspost: false") || !strings.Contains(s, "published: false") {
		t.Errorf("expected explicit false flags, got:\n%s", s)
	}
	if strings.Contains(s, "canonical_url") {
		t.Errorf("empty optional fields should be omitted, got:\n%s", s)
	}
}
