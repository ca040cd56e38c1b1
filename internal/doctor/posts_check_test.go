package doctor

import (
	"os"
	"path/filepath"
	"testing"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPostsCheck_Run(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		result := NewPostsCheck(filepath.Join(t.TempDir(), "posts")).Run()
		if result.Status != SeverityError {
			t.Errorf("status = %v, want error", result.Status)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		result := NewPostsCheck(t.TempDir()).Run()
		if result.Status != SeverityInfo {
			t.Errorf("status = %v, want info", result.Status)
		}
	})

	t.Run("valid posts", func(t *testing.T) {
		dir := t.TempDir()
		writePost(t, dir, "a.md", "---\ntitle: A\ncrosspost: true\n---\nbody\n")
		writePost(t, dir, "b.md", "---\ntitle: B\n---\nbody\n")

		result := NewPostsCheck(dir).Run()
		if result.Status != SeverityPass {
			t.Fatalf("status = %v, want pass (%s)", result.Status, result.Message)
		}
		if got := result.Details["total"]; got != 2 {
			t.Errorf("total = %v, want 2", got)
		}
		if got := result.Details["eligible"]; got != 1 {
			t.Errorf("eligible = %v, want 1", got)
		}
	})

	t.Run("post without title", func(t *testing.T) {
		dir := t.TempDir()
		writePost(t, dir, "good.md", "---\ntitle: Good\n---\n")
		writePost(t, dir, "bad.md", "---\npublished: true\n---\nbody\n")

		result := NewPostsCheck(dir).Run()
		if result.Status != SeverityError {
			t.Fatalf("status = %v, want error", result.Status)
		}
		invalid, ok := result.Details["invalid"].(map[string]string)
		if !ok {
			t.Fatalf("Details[invalid] = %T, want map[string]string", result.Details["invalid"])
		}
		if _, ok := invalid[filepath.Join(dir, "bad.md")]; !ok {
			t.Errorf("invalid = %v, want bad.md listed", invalid)
		}
	})
}
