package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// DefaultEnvFiles are the dotenv files consulted for local runs.
var DefaultEnvFiles = []string{".env"}

// LoadEnv loads variables from the given dotenv files into the process
// environment, overriding existing values. Missing files are skipped.
// It returns the files that were loaded.
func LoadEnv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			return loaded, errors.Wrapf(err, "loading %s", file)
		}
		loaded = append(loaded, file)
	}
	return loaded, nil
}
