// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// ErrNoEditor is returned when the editor variable holds only whitespace.
var ErrNoEditor = errors.New("no editor configured")

// Open launches the user's editor on path and waits for it to exit.
// The editor comes from $EDITOR, then $VISUAL, then nano, then vi. The
// variable may carry arguments, as in EDITOR="code --wait".
func Open(ctx context.Context, path string) error {
	name, args, err := command(detectEditor())
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", name)
	}

	return nil
}

// command splits an $EDITOR value into the binary and its arguments.
func command(value string) (string, []string, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return "", nil, ErrNoEditor
	}
	return fields[0], fields[1:], nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// nano is easier for first-time users
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
