// Package main is the entry point for the crosspost CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/crosspost/cmd/crosspost/commands"
	"github.com/thoreinstein/crosspost/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
		os.Exit(errors.ExitCode(err))
	}
}
