package doctor

import (
	"fmt"
	"strings"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
)

// NotifyCheck verifies that every notification URL names a known service.
// Nothing is sent.
type NotifyCheck struct {
	urls []string
}

var _ Check = (*NotifyCheck)(nil)

// NewNotifyCheck creates a check over the configured notification URLs.
func NewNotifyCheck(urls []string) *NotifyCheck {
	return &NotifyCheck{urls: urls}
}

// Name returns the unique identifier for this check.
func (c *NotifyCheck) Name() string {
	return "notifications"
}

// Category returns the grouping for this check.
func (c *NotifyCheck) Category() string {
	return "config"
}

// Run parses each URL with shoutrrr.
func (c *NotifyCheck) Run() *CheckResult {
	services := make(map[string]string)
	var bad int
	for _, u := range c.urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		masked := MaskURL(u)
		if _, err := shoutrrr.CreateSender(u); err != nil {
			services[masked] = "invalid: " + strings.ReplaceAll(err.Error(), u, masked)
			bad++
			continue
		}
		services[masked] = "ok"
	}

	if len(services) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "no notification URLs configured",
		}
	}

	details := map[string]any{"services": services}
	if bad > 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d of %d notification URL(s) invalid", bad, len(services)),
			Details:  details,
			FixHint:  "check the URL against the shoutrrr service documentation",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d notification service(s) configured", len(services)),
		Details:  details,
	}
}
