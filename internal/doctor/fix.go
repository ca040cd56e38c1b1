package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// Fixer is implemented by checks that can remediate what they found.
// CanFix and Fix both refer to the most recent Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult describes one attempted remediation.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// permissionFixer holds the chmod-able issues of the last permission run.
type permissionFixer struct {
	pending []pathIssue
}

// record keeps the fixable subset of issues, replacing any earlier run.
func (f *permissionFixer) record(issues []pathIssue) {
	f.pending = nil
	for _, issue := range issues {
		if issue.Fixable {
			f.pending = append(f.pending, issue)
		}
	}
}

// CanFix reports whether the last run found a fixable issue.
func (f *permissionFixer) CanFix() bool {
	return len(f.pending) > 0
}

// Fix chmods every pending path to its target mode. Pending issues are
// consumed; run the check again to see the new state.
func (f *permissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, len(f.pending))
	for _, issue := range f.pending {
		results = append(results, chmodIssue(issue))
	}
	f.pending = nil
	return results
}

func chmodIssue(issue pathIssue) FixResult {
	result := FixResult{Path: issue.Path}

	if issue.TargetPerm == 0 {
		result.Description = "no target mode for " + issue.Type
		result.Error = errors.Newf("cannot fix %s %s: no target mode", issue.Type, issue.Path)
		return result
	}

	if err := os.Chmod(issue.Path, issue.TargetPerm); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %s: %v", formatOctal(issue.TargetPerm), err)
		result.Error = errors.Wrapf(err, "chmod %s %s", formatOctal(issue.TargetPerm), issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = "chmod " + formatOctal(issue.TargetPerm)
	return result
}
