package commands

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/crosspost/internal/ledger"
)

func TestStatusCommand(t *testing.T) {
	f := newPublishFixture(t, "")

	l, err := ledger.Open(f.ledger)
	if err != nil {
		t.Fatal(err)
	}
	published := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	l.Record(ledger.Entry{Post: "posts/hello.md", Platform: "devto", ID: "7", URL: "https://dev.to/me/hello-7", PublishedAt: published})
	l.Record(ledger.Entry{Post: "posts/hello.md", Platform: "hashnode", ID: "d1", Draft: true, PublishedAt: published})
	if err := l.Save(); err != nil {
		t.Fatal(err)
	}

	t.Run("text", func(t *testing.T) {
		out, err := executeCommand(t, "status", "--config", f.config)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"(disabled)", "posts/hello.md", "DEV Community", "https://dev.to/me/hello-7", "(draft)"} {
			if !strings.Contains(out, want) {
				t.Errorf("status output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("json filtered by platform", func(t *testing.T) {
		out, err := executeCommand(t, "status", "--config", f.config, "--json", "-p", "hashnode")
		if err != nil {
			t.Fatal(err)
		}
		var entries []ledger.Entry
		if err := json.Unmarshal([]byte(out), &entries); err != nil {
			t.Fatalf("decoding %q: %v", out, err)
		}
		if len(entries) != 1 || entries[0].Platform != "hashnode" {
			t.Errorf("entries = %+v, want the hashnode entry only", entries)
		}
	})
}

func TestStatusCommand_Empty(t *testing.T) {
	f := newPublishFixture(t, "")

	out, err := executeCommand(t, "status", "--config", f.config)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No publications recorded.") {
		t.Errorf("status output = %q", out)
	}
}
