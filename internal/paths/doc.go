// Package paths provides platform identifiers and filesystem locations
// used by the crosspost CLI.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. The user-level configuration file lives at
// <ConfigHome>/crosspost/crosspost.yaml.
//
// # Platform Constants
//
// Use the provided platform constants when calling platform-specific functions:
//
//	paths.DisplayName(paths.PlatformDevTo)        // DEV Community
//	paths.DefaultEndpoint(paths.PlatformHashnode) // https://gql.hashnode.com
//
// Functions that accept a platform parameter return empty strings for
// unknown platforms. Use [ValidPlatform] to check validity before calling.
package paths
