// Package ledger records which posts have already been published to which
// platforms so that later runs can skip them.
//
// The ledger is a YAML file committed alongside the posts. Keys are post
// paths relative to a base directory (the working directory by default), so
// the same file works regardless of where the repository is checked out.
package ledger

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/paths"
	"github.com/thoreinstein/crosspost/pkg/fileutil"
)

// CurrentVersion is the ledger file format version.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned when the file was written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported ledger version")

// Entry records one successful publication.
type Entry struct {
	Post        string    `yaml:"post" json:"post"`
	Platform    string    `yaml:"platform" json:"platform"`
	ID          string    `yaml:"id" json:"id"`
	URL         string    `yaml:"url,omitempty" json:"url,omitempty"`
	Draft       bool      `yaml:"draft,omitempty" json:"draft,omitempty"`
	RunID       string    `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	PublishedAt time.Time `yaml:"published_at" json:"published_at"`
}

type document struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

type key struct {
	post     string
	platform string
}

// Ledger is an in-memory view of the ledger file. It is safe for concurrent use.
type Ledger struct {
	path    string
	baseDir string

	mu      sync.Mutex
	entries map[key]Entry
	dirty   bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithBaseDir sets the directory post paths are made relative to.
func WithBaseDir(dir string) Option {
	return func(l *Ledger) {
		l.baseDir = dir
	}
}

// Open loads the ledger at path. A missing file yields an empty ledger.
func Open(path string, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		path:    path,
		entries: make(map[key]Entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "resolving working directory")
		}
		l.baseDir = wd
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, errors.Wrapf(err, "reading ledger %s", path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing ledger %s", path)
	}
	if doc.Version > CurrentVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "%s has version %d", path, doc.Version)
	}
	for _, e := range doc.Entries {
		e.Post = l.normalize(e.Post)
		l.entries[key{e.Post, e.Platform}] = e
	}
	return l, nil
}

// Path returns the ledger file location.
func (l *Ledger) Path() string {
	return l.path
}

// normalize converts a post path to the slash-separated form relative to
// the base directory. Paths outside the base are kept as given.
func (l *Ledger) normalize(post string) string {
	p := post
	if filepath.IsAbs(p) {
		if rel, err := filepath.Rel(l.baseDir, p); err == nil && !isOutside(rel) {
			p = rel
		}
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func isOutside(rel string) bool {
	return rel == ".." || len(rel) > 3 && rel[:3] == ".."+string(filepath.Separator)
}

// Get returns the entry for post and platform.
func (l *Ledger) Get(post, platform string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key{l.normalize(post), platform}]
	return e, ok
}

// Record adds or replaces the entry for e.Post and e.Platform.
// A zero PublishedAt is set to the current time.
func (l *Ledger) Record(e Entry) {
	e.Post = l.normalize(e.Post)
	if e.PublishedAt.IsZero() {
		e.PublishedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[key{e.Post, e.Platform}] = e
	l.dirty = true
}

// Entries returns all entries ordered by post, then platform.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Post, b.Post), cmp.Compare(a.Platform, b.Platform))
	})
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// Save writes the ledger atomically if anything was recorded since it was
// opened or last saved. The parent directory is created if needed.
func (l *Ledger) Save() error {
	entries := l.Entries()

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dirty {
		return nil
	}

	if err := paths.EnsureDir(filepath.Dir(l.path), 0); err != nil {
		return errors.Wrap(err, "creating ledger directory")
	}

	doc := document{Version: CurrentVersion, Entries: entries}
	if err := fileutil.AtomicWriteYAML(l.path, doc); err != nil {
		return errors.Wrapf(err, "writing ledger %s", l.path)
	}
	l.dirty = false
	return nil
}
