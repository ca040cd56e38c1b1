package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "crosspost"

// Platform identifiers for supported publishing targets.
const (
	PlatformDevTo    = "devto"
	PlatformHashnode = "hashnode"
)

// platformDisplayNames maps platform names to human-readable names.
var platformDisplayNames = map[string]string{
	PlatformDevTo:    "DEV Community",
	PlatformHashnode: "Hashnode",
}

// platformEndpoints maps platform names to their default API endpoints.
var platformEndpoints = map[string]string{
	PlatformDevTo:    "https://dev.to/api",
	PlatformHashnode: "https://gql.hashnode.com",
}

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// DefaultPostsDir is the directory scanned for posts when none is configured.
const DefaultPostsDir = "posts"

// DefaultLedgerPath is the ledger location relative to the repository root.
const DefaultLedgerPath = ".crosspost/ledger.yaml"

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the crosspost configuration directory.
// Returns: <ConfigHome>/crosspost/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ValidPlatform returns true if the platform name is recognized.
func ValidPlatform(platform string) bool {
	_, ok := platformDisplayNames[platform]
	return ok
}

// Platforms returns a slice of all supported platform identifiers
// in their canonical order.
func Platforms() []string {
	return []string{
		PlatformDevTo,
		PlatformHashnode,
	}
}

// DisplayName returns the human-readable name of a platform.
// Returns an empty string for unknown platforms.
func DisplayName(platform string) string {
	return platformDisplayNames[platform]
}

// DefaultEndpoint returns the default API endpoint of a platform.
// Returns an empty string for unknown platforms.
func DefaultEndpoint(platform string) string {
	return platformEndpoints[platform]
}
