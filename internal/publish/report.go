package publish

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/notify"
	"github.com/thoreinstein/crosspost/internal/paths"
	"github.com/thoreinstein/crosspost/internal/platform"
)

// Status is the result of one (post, platform) pair.
type Status string

const (
	StatusPublished Status = "published"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one post on one platform.
type Outcome struct {
	Post     string           `json:"post"`
	Title    string           `json:"title"`
	Platform string           `json:"platform"`
	Status   Status           `json:"status"`
	Reason   string           `json:"reason,omitempty"`
	Result   *platform.Result `json:"result,omitempty"`
	Duration time.Duration    `json:"-"`
	Err      error            `json:"-"`
}

func (o *Outcome) skip(reason string) {
	o.Status = StatusSkipped
	o.Reason = reason
}

func (o *Outcome) fail(err error) {
	o.Status = StatusFailed
	o.Err = err
	o.Reason = err.Error()
}

// MarshalJSON adds the error text and duration in milliseconds.
func (o Outcome) MarshalJSON() ([]byte, error) {
	type plain Outcome
	return json.Marshal(struct {
		plain
		Error      string `json:"error,omitempty"`
		DurationMS int64  `json:"duration_ms,omitempty"`
	}{
		plain:      plain(o),
		Error:      errString(o.Err),
		DurationMS: o.Duration.Milliseconds(),
	})
}

// ParseFailure is a post that could not be read. No request was made for it.
type ParseFailure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// MarshalJSON adds the error text.
func (f ParseFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}{f.Path, errString(f.Err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Summary counts outcomes by status.
type Summary struct {
	Posts     int `json:"posts"`
	Published int `json:"published"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Invalid   int `json:"invalid"`
}

// Report is the result of a run.
type Report struct {
	RunID       string         `json:"run_id"`
	DryRun      bool           `json:"dry_run"`
	Platforms   []string       `json:"platforms"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Outcomes    []Outcome      `json:"outcomes"`
	ParseErrors []ParseFailure `json:"parse_errors"`
}

// Summary counts the report's outcomes. Posts counts every path examined,
// including those that failed to parse.
func (r *Report) Summary() Summary {
	s := Summary{Invalid: len(r.ParseErrors)}
	seen := make(map[string]bool)
	for _, o := range r.Outcomes {
		seen[o.Post] = true
		switch o.Status {
		case StatusPublished:
			s.Published++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	s.Posts = len(seen) + s.Invalid
	return s
}

// HasFailures reports whether any post failed to parse or any platform
// call failed.
func (r *Report) HasFailures() bool {
	s := r.Summary()
	return s.Failed > 0 || s.Invalid > 0
}

// Failed returns the failed outcomes in report order.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// Err summarizes the failures as an error wrapping errors.ErrPublishFailed,
// or returns nil when there were none.
func (r *Report) Err() error {
	if !r.HasFailures() {
		return nil
	}
	s := r.Summary()
	return errors.Wrapf(errors.ErrPublishFailed, "%d failed, %d invalid", s.Failed, s.Invalid)
}

type jsonReport struct {
	*Report
	Summary Summary `json:"summary"`
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(jsonReport{Report: r, Summary: r.Summary()}), "encoding JSON report")
}

// WriteText writes one line per outcome followed by a summary line.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.ParseErrors {
		fmt.Fprintf(w, "%s %s: %v\n", color.RedString("✗"), f.Path, f.Err)
	}

	for _, o := range r.Outcomes {
		name := paths.DisplayName(o.Platform)
		switch o.Status {
		case StatusPublished:
			where := ""
			if o.Result != nil && o.Result.URL != "" {
				where = " " + o.Result.URL
			}
			draft := ""
			if o.Result != nil && o.Result.Draft {
				draft = color.HiBlackString(" (draft)")
			}
			fmt.Fprintf(w, "%s %s → %s%s%s\n", color.GreenString("✓"), o.Post, name, where, draft)
		case StatusSkipped:
			fmt.Fprintf(w, "%s %s → %s %s\n", color.HiBlackString("-"), o.Post, name,
				color.HiBlackString("(%s)", o.Reason))
		case StatusFailed:
			fmt.Fprintf(w, "%s %s → %s: %s\n", color.RedString("✗"), o.Post, name, o.Reason)
		}
	}

	fmt.Fprintln(w, r.summaryLine())
	return nil
}

func (r *Report) summaryLine() string {
	s := r.Summary()
	parts := []string{
		color.GreenString("%d published", s.Published),
		fmt.Sprintf("%d skipped", s.Skipped),
	}
	failed := fmt.Sprintf("%d failed", s.Failed)
	if s.Failed > 0 {
		failed = color.RedString(failed)
	}
	parts = append(parts, failed)
	if s.Invalid > 0 {
		parts = append(parts, color.RedString("%d invalid", s.Invalid))
	}

	line := fmt.Sprintf("%d post(s): %s", s.Posts, strings.Join(parts, ", "))
	if r.DryRun {
		line += color.YellowString(" [dry run]")
	}
	return line
}

// Notification renders the report as a chat message. Skipped outcomes are
// left out so that a run with nothing to do stays short.
func (r *Report) Notification() notify.Message {
	s := r.Summary()

	title := "crosspost: run finished"
	if r.HasFailures() {
		title = "crosspost: run finished with failures"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d published, %d skipped, %d failed, %d invalid\n",
		s.Published, s.Skipped, s.Failed, s.Invalid)
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusPublished:
			url := ""
			if o.Result != nil {
				url = o.Result.URL
			}
			fmt.Fprintf(&sb, "published %q to %s %s\n", o.Title, paths.DisplayName(o.Platform), url)
		case StatusFailed:
			fmt.Fprintf(&sb, "failed %q on %s: %s\n", o.Title, paths.DisplayName(o.Platform), o.Reason)
		}
	}
	for _, f := range r.ParseErrors {
		fmt.Fprintf(&sb, "invalid %s: %v\n", f.Path, f.Err)
	}
	fmt.Fprintf(&sb, "run %s", r.RunID)

	return notify.Message{Title: title, Body: sb.String()}
}
