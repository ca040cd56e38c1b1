// Package prompt provides interactive CLI prompts for choosing posts.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/post"
)

// Sentinel errors for post selection.
var (
	ErrNoPosts            = errors.New("no posts to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles numbered post selection prompts. It is the fallback
// when the terminal cannot host the fuzzy finder.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectPosts prompts the user to choose any number of posts.
//
// Input is a comma or space separated list of numbers and ranges
// ("1,3", "2-4 6"). An empty line or "all" selects every post.
//
// Returns:
//   - ErrNoPosts if the list is empty
//   - The posts in list order, each at most once
//   - ErrInvalidSelection if any entry is malformed or out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectPosts(posts []*post.Post) ([]*post.Post, error) {
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}

	fmt.Fprintf(s.writer, "%d post(s) found:\n", len(posts))
	for i, p := range posts {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, p.Title, p.Path)
	}
	fmt.Fprintf(s.writer, "Select [all]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "all") {
		return posts, nil
	}

	chosen := make([]bool, len(posts))
	for _, field := range strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' }) {
		lo, hi, err := parseRange(field)
		if err != nil {
			return nil, err
		}
		if lo < 1 || hi > len(posts) || lo > hi {
			return nil, errors.Wrapf(ErrInvalidSelection, "%s is out of range [1-%d]", field, len(posts))
		}
		for i := lo; i <= hi; i++ {
			chosen[i-1] = true
		}
	}

	var selected []*post.Post
	for i, ok := range chosen {
		if ok {
			selected = append(selected, posts[i])
		}
	}
	return selected, nil
}

// parseRange parses "n" or "n-m".
func parseRange(field string) (int, int, error) {
	first, last, isRange := strings.Cut(field, "-")
	if isRange && first == "" {
		// "-1" is a negative number, not a range
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", field)
		}
		return n, n, nil
	}

	lo, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", field)
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(last)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", field)
	}
	return lo, hi, nil
}
