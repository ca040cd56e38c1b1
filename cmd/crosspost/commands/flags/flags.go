// Package flags provides shared flag accessors for CLI commands.
// This package exists so helpers outside the root command can read
// persistent flag values without importing it.
package flags

// platformFlag holds the value of the --platform flag.
var platformFlag []string

// GetPlatformFlag returns the current value of the --platform flag.
func GetPlatformFlag() []string {
	return platformFlag
}

// SetPlatformFlag sets the platform flag value.
// This is used by the root command after parsing and by tests.
func SetPlatformFlag(platforms []string) {
	platformFlag = platforms
}

// PlatformFlagVar returns the storage bound to the --platform flag.
func PlatformFlagVar() *[]string {
	return &platformFlag
}
