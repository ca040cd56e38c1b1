// Package cmd holds build metadata injected via ldflags, e.g.
//
//	go build -ldflags "-X github.com/thoreinstein/crosspost/cmd.Version=v1.2.0"
package cmd

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies this build to the Dev.to and Hashnode APIs.
func UserAgent() string {
	return "crosspost/" + Version + " (+https://github.com/thoreinstein/crosspost)"
}
