// Package git wraps the git commands used to find posts changed by a push.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// ErrNoBase is returned by ChangedFiles when base is the all-zero object
// name CI systems report for the first push of a branch.
var ErrNoBase = errors.New("no base revision")

// revRegex accepts the revision forms CI passes: object names, refs and
// relative suffixes. Leading dashes are rejected to avoid option injection.
var revRegex = regexp.MustCompile(`^[A-Za-z0-9_./~^@{}-]+$`)

// ValidateRev checks that rev is safe to pass to git as a revision.
func ValidateRev(rev string) error {
	if rev == "" {
		return errors.New("empty revision")
	}
	if strings.HasPrefix(rev, "-") || !revRegex.MatchString(rev) {
		return errors.Newf("invalid revision: %q", rev)
	}
	return nil
}

// IsZeroRev reports whether rev is an all-zero object name.
func IsZeroRev(rev string) bool {
	return len(rev) >= 7 && strings.Trim(rev, "0") == ""
}

// run executes git in dir and returns stdout. Stderr is included in the error.
func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, errors.Wrapf(err, "git %s failed", args[0])
		}
		return nil, errors.Wrapf(err, "git %s failed: %s", args[0], msg)
	}
	return stdout.Bytes(), nil
}

// TopLevel returns the root of the work tree containing dir.
func TopLevel(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ChangedFiles returns the files added, modified, copied or renamed between
// base and head, as absolute paths. Renames report the new path; deleted
// files are excluded.
func ChangedFiles(ctx context.Context, dir, base, head string) ([]string, error) {
	if IsZeroRev(base) {
		return nil, ErrNoBase
	}
	for _, rev := range []string{base, head} {
		if err := ValidateRev(rev); err != nil {
			return nil, err
		}
	}

	root, err := TopLevel(ctx, dir)
	if err != nil {
		return nil, err
	}

	out, err := run(ctx, root, "diff", "--name-only", "--find-renames", "--diff-filter=ACMR", "-z", base, head, "--")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range bytes.Split(out, []byte{0}) {
		if len(name) == 0 {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(string(name))))
	}
	return files, nil
}
