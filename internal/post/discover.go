package post

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// Ext is the file extension of a post.
const Ext = ".md"

// IsPostFile reports whether path names a markdown post.
func IsPostFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Ext)
}

// Discover returns every post file under dir, sorted. Hidden directories
// are skipped. A missing dir wraps fs.ErrNotExist.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading posts directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf("posts directory %s is not a directory", dir)
	}

	var found []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsPostFile(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking posts directory %s", dir)
	}

	slices.Sort(found)
	return found, nil
}

// Within keeps the post files among paths that live under dir, in order.
// Used to narrow a list of changed files to the posts directory.
func Within(paths []string, dir string) []string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	var kept []string
	for _, p := range paths {
		if !IsPostFile(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absDir, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
