package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// maxSecureFilePerm is the maximum secure permission for ordinary files (-rw-r--r--).
const maxSecureFilePerm os.FileMode = 0644

// maxDirPerm is the mode a world-writable directory is reset to (drwxr-xr-x).
const maxDirPerm os.FileMode = 0755

// maxSecretFilePerm is the maximum permission for files holding credentials (-rw-------).
const maxSecretFilePerm os.FileMode = 0600

// PathTarget is a file or directory the permission check inspects.
type PathTarget struct {
	// Path is the location to inspect.
	Path string

	// Label names what the path is for (config, env, posts, ledger).
	Label string

	// Dir marks a directory target.
	Dir bool

	// Required reports a missing path as an error instead of skipping it.
	Required bool

	// Writable requires a directory to accept new files.
	Writable bool

	// Secret marks a file that may hold credentials.
	Secret bool
}

// PathPermissionCheck validates the paths crosspost reads and writes.
type PathPermissionCheck struct {
	permissionFixer

	targets []PathTarget
}

var (
	_ Check = (*PathPermissionCheck)(nil)
	_ Fixer = (*PathPermissionCheck)(nil)
)

// NewPathPermissionCheck creates a new path permission check over targets.
func NewPathPermissionCheck(targets ...PathTarget) *PathPermissionCheck {
	return &PathPermissionCheck{targets: targets}
}

// Name returns the unique identifier for this check.
func (c *PathPermissionCheck) Name() string {
	return "path-permissions"
}

// Category returns the grouping for this check.
func (c *PathPermissionCheck) Category() string {
	return "filesystem"
}

// Run executes the path and permission diagnostic check.
func (c *PathPermissionCheck) Run() *CheckResult {
	var issues []pathIssue
	var checked int

	for _, t := range c.targets {
		if t.Path == "" {
			continue
		}
		if t.Dir {
			issues = append(issues, c.checkDirectory(t)...)
		} else {
			issues = append(issues, c.checkFile(t)...)
		}
		checked++
	}

	c.record(issues)
	return c.buildResult(issues, checked)
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Label       string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string // octal representation if available
	Fixable     bool
	FixHint     string
	// TargetPerm is the mode a fix applies; required when Fixable.
	TargetPerm os.FileMode
}

// checkFile validates a file path and permissions.
func (c *PathPermissionCheck) checkFile(t PathTarget) []pathIssue {
	var issues []pathIssue

	info, err := os.Stat(t.Path)
	if os.IsNotExist(err) {
		if t.Required {
			return []pathIssue{{
				Path:     t.Path,
				Label:    t.Label,
				Type:     "file",
				Problem:  "file does not exist",
				Severity: SeverityError,
			}}
		}
		return nil
	}
	if err != nil {
		issues = append(issues, pathIssue{
			Path:     t.Path,
			Label:    t.Label,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		})
		return issues
	}

	f, err := os.Open(t.Path)
	if err != nil {
		issues = append(issues, pathIssue{
			Path:        t.Path,
			Label:       t.Label,
			Type:        "file",
			Problem:     "file is not readable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod u+r " + t.Path,
		})
		return issues
	}
	f.Close()

	// Unix permissions don't apply on Windows
	if runtime.GOOS != "windows" {
		issues = append(issues, c.checkFilePermissions(t, info.Mode())...)
	}

	return issues
}

// checkDirectory validates a directory path and permissions.
func (c *PathPermissionCheck) checkDirectory(t PathTarget) []pathIssue {
	var issues []pathIssue

	info, err := os.Stat(t.Path)
	if os.IsNotExist(err) {
		if t.Required {
			return []pathIssue{{
				Path:     t.Path,
				Label:    t.Label,
				Type:     "directory",
				Problem:  "directory does not exist",
				Severity: SeverityError,
				FixHint:  "mkdir -p " + t.Path,
			}}
		}
		return nil
	}
	if err != nil {
		issues = append(issues, pathIssue{
			Path:     t.Path,
			Label:    t.Label,
			Type:     "directory",
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		})
		return issues
	}

	if !info.IsDir() {
		issues = append(issues, pathIssue{
			Path:     t.Path,
			Label:    t.Label,
			Type:     "directory",
			Problem:  "expected directory but found file",
			Severity: SeverityError,
		})
		return issues
	}

	if t.Writable {
		writable, err := c.isDirectoryWritable(t.Path)
		if err != nil || !writable {
			issues = append(issues, pathIssue{
				Path:        t.Path,
				Label:       t.Label,
				Type:        "directory",
				Problem:     "directory is not writable",
				Severity:    SeverityWarning,
				Permissions: formatPermissions(info.Mode()),
				FixHint:     "chmod u+w " + t.Path,
			})
		}
	}

	if runtime.GOOS != "windows" {
		issues = append(issues, c.checkDirectoryPermissions(t, info.Mode())...)
	}

	return issues
}

// checkFilePermissions validates file permissions for security concerns.
func (c *PathPermissionCheck) checkFilePermissions(t PathTarget, mode os.FileMode) []pathIssue {
	var issues []pathIssue
	perm := mode.Perm()

	limit := maxSecureFilePerm
	if c.mayContainSecrets(t) {
		limit = maxSecretFilePerm
	}

	// World-writable is always a security concern
	if perm&0002 != 0 {
		issues = append(issues, pathIssue{
			Path:        t.Path,
			Label:       t.Label,
			Type:        "file",
			Problem:     "file is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(mode),
			Fixable:     true,
			FixHint:     fmt.Sprintf("chmod %s %s", formatOctal(limit), t.Path),
			TargetPerm:  limit,
		})
		return issues
	}

	// Files that may hold credentials should not be readable by others
	if perm&^limit != 0 && c.mayContainSecrets(t) {
		issues = append(issues, pathIssue{
			Path:        t.Path,
			Label:       t.Label,
			Type:        "file",
			Problem:     fmt.Sprintf("file may contain credentials and has permissive mode %s (expected %s or less)", formatPermissions(mode), formatOctal(limit)),
			Severity:    SeverityWarning,
			Permissions: formatPermissions(mode),
			Fixable:     true,
			FixHint:     fmt.Sprintf("chmod %s %s", formatOctal(limit), t.Path),
			TargetPerm:  limit,
		})
	}

	return issues
}

// checkDirectoryPermissions validates directory permissions for security concerns.
func (c *PathPermissionCheck) checkDirectoryPermissions(t PathTarget, mode os.FileMode) []pathIssue {
	var issues []pathIssue
	perm := mode.Perm()

	// World-writable directories are always a security concern
	if perm&0002 != 0 {
		issues = append(issues, pathIssue{
			Path:        t.Path,
			Label:       t.Label,
			Type:        "directory",
			Problem:     "directory is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(mode),
			Fixable:     true,
			FixHint:     fmt.Sprintf("chmod %s %s", formatOctal(maxDirPerm), t.Path),
			TargetPerm:  maxDirPerm,
		})
	}

	return issues
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func (c *PathPermissionCheck) isDirectoryWritable(path string) (bool, error) {
	tmpFile, err := os.CreateTemp(path, ".crosspost-doctor-test-*")
	if err != nil {
		return false, err
	}

	tmpPath := tmpFile.Name()
	tmpFile.Close()
	os.Remove(tmpPath)

	return true, nil
}

// mayContainSecrets reports whether the target may hold credentials, either
// because it is marked secret or because its name suggests it.
func (c *PathPermissionCheck) mayContainSecrets(t PathTarget) bool {
	if t.Secret {
		return true
	}

	lower := strings.ToLower(filepath.Base(t.Path))
	secretPatterns := []string{
		".env",      // dotenv files hold the API keys for local runs
		"crosspost", // crosspost.yaml may carry platform credentials
		"secret",
		"credential",
	}
	for _, pattern := range secretPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *PathPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d paths have valid permissions", checked),
			Details:  map[string]any{"checked_paths": checked},
		}
	}

	// Find the highest severity among all issues
	highestSeverity := SeverityPass
	for _, issue := range issues {
		if issue.Severity > highestSeverity {
			highestSeverity = issue.Severity
		}
	}

	details := make(map[string]any)
	details["checked_paths"] = checked
	details["issue_count"] = len(issues)

	issueDetails := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		issueMap := map[string]any{
			"path":     issue.Path,
			"label":    issue.Label,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			issueMap["permissions"] = issue.Permissions
		}
		if issue.FixHint != "" {
			issueMap["fix_hint"] = issue.FixHint
		}
		issueDetails = append(issueDetails, issueMap)
	}
	details["issues"] = issueDetails

	fixable := false
	var fixHints []string
	for _, issue := range issues {
		if issue.Fixable {
			fixable = true
		}
		if issue.FixHint != "" {
			fixHints = append(fixHints, issue.FixHint)
		}
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   highestSeverity,
		Message:  fmt.Sprintf("found %d issue(s) across %d paths", len(issues), checked),
		Details:  details,
		Fixable:  fixable,
	}

	if len(fixHints) > 0 {
		result.FixHint = strings.Join(fixHints, "; ")
	}

	return result
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// formatOctal returns the octal representation of a file mode.
func formatOctal(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode)
}
