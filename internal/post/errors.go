package post

import (
	"fmt"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// ErrMissingTitle is returned when the frontmatter has no usable title.
var ErrMissingTitle = errors.New("missing required field: title")

// ParseError represents an error that occurred while reading a post.
// No platform request is made for a post that fails to parse.
type ParseError struct {
	Path string // Path to the file that failed to parse
	Err  error  // Underlying error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing post: %v", e.Err)
	}
	return fmt.Sprintf("parsing post %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
