// Package cli provides the glue between configuration and the platform
// clients used by crosspost commands.
package cli

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/thoreinstein/crosspost/internal/config"
	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/paths"
	"github.com/thoreinstein/crosspost/internal/platform"
	"github.com/thoreinstein/crosspost/internal/platform/devto"
	"github.com/thoreinstein/crosspost/internal/platform/hashnode"
)

// Sentinel errors for platform operations.
var (
	// ErrUnknownPlatform is returned when an unknown platform name is provided.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrNoPlatformsEnabled is returned when configuration and flags leave
	// no platform to publish to.
	ErrNoPlatformsEnabled = errors.New("no platforms enabled")
)

// ResolvePlatforms returns the platform names for a run.
//
// Names given on the command line win and may be comma separated
// ("devto,hashnode"). Otherwise the configured default_platforms are used,
// minus any platform whose enabled flag is false. The result is in the
// order of paths.Platforms() without duplicates.
func ResolvePlatforms(names []string, cfg *config.Config) ([]string, error) {
	var requested []string
	for _, n := range names {
		for part := range strings.SplitSeq(n, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				requested = append(requested, part)
			}
		}
	}

	explicit := len(requested) > 0
	if !explicit {
		requested = cfg.DefaultPlatforms
	}

	var invalid []string
	for _, name := range requested {
		if !paths.ValidPlatform(name) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s (valid: %s)",
			ErrUnknownPlatform,
			strings.Join(invalid, ", "),
			strings.Join(paths.Platforms(), ", "))
	}

	var resolved []string
	for _, name := range paths.Platforms() {
		if !slices.Contains(requested, name) {
			continue
		}
		if !explicit && !enabled(cfg, name) {
			continue
		}
		resolved = append(resolved, name)
	}

	if len(resolved) == 0 {
		return nil, ErrNoPlatformsEnabled
	}
	return resolved, nil
}

func enabled(cfg *config.Config, name string) bool {
	switch name {
	case paths.PlatformDevTo:
		return cfg.Platforms.DevTo.Enabled
	case paths.PlatformHashnode:
		return cfg.Platforms.Hashnode.Enabled
	default:
		return false
	}
}

// NewHTTPClient returns the client shared by every platform in a run.
func NewHTTPClient(cfg *config.Config) *http.Client {
	timeout := cfg.HTTP.Timeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewPlatform creates the client for name from cfg.
// A missing credential is returned as a *platform.CredentialError.
func NewPlatform(name string, cfg *config.Config, client platform.HTTPClient) (platform.Platform, error) {
	switch name {
	case paths.PlatformDevTo:
		return devto.New(cfg.Platforms.DevTo.APIKey,
			devto.WithEndpoint(cfg.Platforms.DevTo.Endpoint),
			devto.WithHTTPClient(client),
		)
	case paths.PlatformHashnode:
		return hashnode.New(cfg.Platforms.Hashnode.Token, cfg.Platforms.Hashnode.PublicationID,
			hashnode.WithEndpoint(cfg.Platforms.Hashnode.Endpoint),
			hashnode.WithHTTPClient(client),
		)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, name)
	}
}

// BuildRegistry creates a registry holding names. A platform whose
// credential is missing is registered as disabled so that every eligible
// post reports it failed; any other construction error is returned.
func BuildRegistry(names []string, cfg *config.Config, client platform.HTTPClient) (*platform.Registry, error) {
	reg := platform.NewRegistry()
	for _, name := range names {
		p, err := NewPlatform(name, cfg, client)
		if err != nil {
			if errors.Is(err, platform.ErrMissingCredential) {
				if derr := reg.Disable(name, err); derr != nil {
					return nil, derr
				}
				continue
			}
			return nil, errors.Wrapf(err, "creating %s client", name)
		}
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
