package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidPlatform indicates an unrecognized platform name.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidEndpoint indicates an endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidTimeout indicates a non-positive HTTP timeout.
	ErrInvalidTimeout = errors.New("http.timeout must be positive")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
// Missing credentials are not validation errors; they disable the
// affected platform at publish time.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	for _, platform := range cfg.DefaultPlatforms {
		if !paths.ValidPlatform(platform) {
			errs = append(errs, &PlatformError{
				Platform: platform,
				Err:      ErrInvalidPlatform,
			})
		}
	}

	if err := validatePath(cfg.PostsDir); err != nil {
		errs = append(errs, &PathError{Field: "posts_dir", Path: cfg.PostsDir, Err: err})
	}

	if cfg.Ledger.Enabled {
		if err := validatePath(cfg.Ledger.Path); err != nil {
			errs = append(errs, &PathError{Field: "ledger.path", Path: cfg.Ledger.Path, Err: err})
		}
	}

	if cfg.Metrics.File != "" {
		if err := validatePath(cfg.Metrics.File); err != nil {
			errs = append(errs, &PathError{Field: "metrics.file", Path: cfg.Metrics.File, Err: err})
		}
	}

	endpoints := map[string]string{
		paths.PlatformDevTo:    cfg.Platforms.DevTo.Endpoint,
		paths.PlatformHashnode: cfg.Platforms.Hashnode.Endpoint,
	}
	for _, platform := range paths.Platforms() {
		if err := validateEndpoint(endpoints[platform]); err != nil {
			errs = append(errs, &PlatformError{Platform: platform, Err: err})
		}
	}

	if cfg.HTTP.Timeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return ErrInvalidPath
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	if filepath.Clean(path) == "" {
		return ErrInvalidPath
	}

	return nil
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidEndpoint
	}
	return nil
}

// PlatformError represents an error for a specific platform.
type PlatformError struct {
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return e.Err.Error() + ": " + e.Platform
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
