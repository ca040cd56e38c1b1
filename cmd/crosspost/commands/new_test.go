package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/crosspost/internal/post"
)

func TestNewCommand(t *testing.T) {
	f := newPublishFixture(t, "")

	out, err := executeCommand(t, "new", "--config", f.config, "--no-edit", "-t", "go", "--crosspost", "Hello, World!")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(f.posts, "hello-world.md")
	if !strings.Contains(out, path) {
		t.Errorf("output %q does not name %s", out, path)
	}

	p, err := post.NewParser().ParseFile(path)
	if err != nil {
		t.Fatalf("parsing new post: %v", err)
	}
	if p.Title != "Hello, World!" {
		t.Errorf("Title = %q", p.Title)
	}
	if !p.Crosspost || p.Published {
		t.Errorf("flags = crosspost %v published %v, want true false", p.Crosspost, p.Published)
	}
	if len(p.Tags) != 1 || p.Tags[0] != "go" {
		t.Errorf("Tags = %v, want [go]", p.Tags)
	}

	if _, err := executeCommand(t, "new", "--config", f.config, "--no-edit", "Hello, World!"); err == nil {
		t.Error("expected an error when the post already exists")
	}
}

func TestNewCommand_TOML(t *testing.T) {
	f := newPublishFixture(t, "")
	dir := filepath.Join(f.dir, "drafts")

	if _, err := executeCommand(t, "new", "--config", f.config, "--no-edit", "--toml", "--dir", dir, "Second post"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "second-post.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "+++") {
		t.Errorf("post does not start with TOML delimiter:\n%s", data)
	}
}

func TestNewCommand_EditorInvoked(t *testing.T) {
	f := newPublishFixture(t, "")
	marker := filepath.Join(f.dir, "edited")
	script := filepath.Join(f.dir, "editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"$1\" > "+marker+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDITOR", script)

	if _, err := executeCommand(t, "new", "--config", f.config, "Edited post"); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("editor was not run: %v", err)
	}
	if want := filepath.Join(f.posts, "edited-post.md"); strings.TrimSpace(string(got)) != want {
		t.Errorf("editor opened %q, want %q", strings.TrimSpace(string(got)), want)
	}
}
