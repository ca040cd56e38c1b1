package doctor

import (
	"fmt"

	"github.com/thoreinstein/crosspost/internal/ledger"
)

// LedgerCheck verifies that the publication ledger, when enabled, loads.
type LedgerCheck struct {
	enabled bool
	path    string
}

var _ Check = (*LedgerCheck)(nil)

// NewLedgerCheck creates a ledger check.
func NewLedgerCheck(enabled bool, path string) *LedgerCheck {
	return &LedgerCheck{enabled: enabled, path: path}
}

// Name returns the unique identifier for this check.
func (c *LedgerCheck) Name() string {
	return "ledger"
}

// Category returns the grouping for this check.
func (c *LedgerCheck) Category() string {
	return "config"
}

// Run opens the ledger and counts its entries.
func (c *LedgerCheck) Run() *CheckResult {
	if !c.enabled {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "ledger disabled; every run republishes eligible posts",
			FixHint:  "set ledger.enabled: true to skip already-published posts",
		}
	}

	l, err := ledger.Open(c.path)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot load ledger: %v", err),
			Details:  map[string]any{"path": c.path},
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d publication(s) recorded", l.Len()),
		Details:  map[string]any{"path": c.path, "entries": l.Len()},
	}
}
