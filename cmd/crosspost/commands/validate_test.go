package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/crosspost/internal/errors"
)

func TestValidateCommand(t *testing.T) {
	f := newPublishFixture(t, "")
	good := f.write(t, "good.md", "---\ntitle: Good\ntags: [go]\ncrosspost: true\n---\nBody.\n")
	bad := f.write(t, "bad.md", "---\npublished: true\n---\nBody.\n")

	t.Run("valid post", func(t *testing.T) {
		if _, err := executeCommand(t, "validate", "--config", f.config, good); err != nil {
			t.Fatalf("validate %s: %v", good, err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		out, err := executeCommand(t, "validate", "--config", f.config, bad)
		if err == nil {
			t.Fatal("expected an error for a post without a title")
		}
		if got := errors.ExitCode(err); got != errors.ExitUser {
			t.Errorf("ExitCode() = %d, want %d", got, errors.ExitUser)
		}
		if !strings.Contains(out, "missing required field: title") {
			t.Errorf("output missing the title error:\n%s", out)
		}
	})

	t.Run("json covers posts dir", func(t *testing.T) {
		out, err := executeCommand(t, "validate", "--config", f.config, "--json")
		if err == nil {
			t.Fatal("expected an error because bad.md is invalid")
		}
		var doc struct {
			Valid   bool `json:"valid"`
			Results []struct {
				Path string `json:"path"`
			} `json:"results"`
		}
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("decoding %q: %v", out, err)
		}
		if doc.Valid {
			t.Error("valid = true, want false")
		}
		if len(doc.Results) != 2 {
			t.Errorf("results = %d, want 2", len(doc.Results))
		}
	})
}

func TestListCommand(t *testing.T) {
	f := newPublishFixture(t, "")
	f.write(t, "live.md", "---\ntitle: Live post\npublished: true\ntags: [go, cli]\n---\n")
	f.write(t, "draft.md", "---\ntitle: Draft post\ncrosspost: true\n---\n")
	f.write(t, "quiet.md", "---\ntitle: Quiet post\n---\n")
	f.write(t, "broken.md", "no frontmatter here\n")

	t.Run("text", func(t *testing.T) {
		out, err := executeCommand(t, "list", "--config", f.config)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"STATE", "published", "Live post", "go,cli", "draft", "skip", "invalid"} {
			if !strings.Contains(out, want) {
				t.Errorf("list output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("eligible json", func(t *testing.T) {
		out, err := executeCommand(t, "list", "--config", f.config, "--eligible", "--json")
		if err != nil {
			t.Fatal(err)
		}
		var entries []listEntry
		if err := json.Unmarshal([]byte(out), &entries); err != nil {
			t.Fatalf("decoding %q: %v", out, err)
		}
		if len(entries) != 2 {
			t.Fatalf("entries = %+v, want 2 eligible", entries)
		}
		if entries[0].Path != filepath.Join(f.posts, "draft.md") || entries[0].State != "draft" {
			t.Errorf("entries[0] = %+v, want draft.md as draft", entries[0])
		}
	})
}
