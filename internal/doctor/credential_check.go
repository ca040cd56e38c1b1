package doctor

import (
	"fmt"

	"github.com/thoreinstein/crosspost/internal/config"
	"github.com/thoreinstein/crosspost/internal/paths"
)

// credential is one secret a platform needs before it can publish.
type credential struct {
	key   string
	env   string
	value string
}

// CredentialCheck verifies that every selected platform has its credentials.
// Values are reported masked.
type CredentialCheck struct {
	cfg       *config.Config
	platforms []string
}

var _ Check = (*CredentialCheck)(nil)

// NewCredentialCheck creates a credential check for the given platforms.
func NewCredentialCheck(cfg *config.Config, platforms []string) *CredentialCheck {
	return &CredentialCheck{cfg: cfg, platforms: platforms}
}

// Name returns the unique identifier for this check.
func (c *CredentialCheck) Name() string {
	return "credentials"
}

// Category returns the grouping for this check.
func (c *CredentialCheck) Category() string {
	return "platform"
}

// Run executes the credential check.
func (c *CredentialCheck) Run() *CheckResult {
	if len(c.platforms) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "no platforms enabled",
			FixHint:  "set default_platforms in crosspost.yaml or pass --platform",
		}
	}

	details := make(map[string]any, len(c.platforms))
	var missing []string
	for _, name := range c.platforms {
		creds := c.credentials(name)
		info := make(map[string]any, len(creds))
		for _, cr := range creds {
			if cr.value == "" {
				info[cr.key] = "missing"
				missing = append(missing, cr.env)
				continue
			}
			info[cr.key] = MaskValue(cr.value)
		}
		details[name] = info
	}

	if len(missing) > 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d credential(s) missing", len(missing)),
			Details:  details,
			FixHint:  fmt.Sprintf("set %v in the environment or .env", missing),
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("credentials present for %d platform(s)", len(c.platforms)),
		Details:  details,
	}
}

func (c *CredentialCheck) credentials(name string) []credential {
	switch name {
	case paths.PlatformDevTo:
		return []credential{
			{key: "api_key", env: "DEVTO_API_KEY", value: c.cfg.Platforms.DevTo.APIKey},
		}
	case paths.PlatformHashnode:
		return []credential{
			{key: "token", env: "HASHNODE_TOKEN", value: c.cfg.Platforms.Hashnode.Token},
			{key: "publication_id", env: "HASHNODE_PUBLICATION_ID", value: c.cfg.Platforms.Hashnode.PublicationID},
		}
	default:
		return nil
	}
}
