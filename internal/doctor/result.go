// Package doctor provides diagnostic checks for a crosspost setup and the
// secret redaction helpers shared with logging.
package doctor

import (
	"time"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// Severity is the outcome level of a check. Levels are ordered, so the
// worst of several results is the maximum.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name so JSON reports read "warning"
// rather than 2.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if name == string(text) {
			*s = Severity(i)
			return nil
		}
	}
	return errors.Newf("unknown severity %q", text)
}

// CheckResult is the outcome of a single diagnostic check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details carries check-specific context, such as masked credentials
	// per platform or the posts that failed to parse.
	Details map[string]any `json:"details,omitempty"`

	// Fixable is set when `crosspost doctor --fix` can remediate the issue.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts check results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(sev Severity) {
	switch sev {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}

// Report is the result of one doctor run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether any check failed outright.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check produced a warning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Worst returns the highest severity in the report, or SeverityPass when
// it is empty.
func (r *Report) Worst() Severity {
	worst := SeverityPass
	for _, res := range r.Results {
		if res.Status > worst {
			worst = res.Status
		}
	}
	return worst
}
