// Package config provides configuration management for crosspost using Viper.
package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "crosspost"

// EnvPrefix is prepended to every environment variable viper consults.
const EnvPrefix = "CROSSPOST"

// DefaultHTTPTimeout bounds every outbound platform request.
const DefaultHTTPTimeout = 30 * time.Second

// Config represents the top-level configuration structure.
type Config struct {
	PostsDir         string          `mapstructure:"posts_dir" yaml:"posts_dir"`
	DefaultPlatforms []string        `mapstructure:"default_platforms" yaml:"default_platforms"`
	Platforms        PlatformsConfig `mapstructure:"platforms" yaml:"platforms"`
	Ledger           LedgerConfig    `mapstructure:"ledger" yaml:"ledger"`
	Notify           NotifyConfig    `mapstructure:"notify" yaml:"notify"`
	Metrics          MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	HTTP             HTTPConfig      `mapstructure:"http" yaml:"http"`
}

// PlatformsConfig holds per-platform bindings.
type PlatformsConfig struct {
	DevTo    DevToConfig    `mapstructure:"devto" yaml:"devto"`
	Hashnode HashnodeConfig `mapstructure:"hashnode" yaml:"hashnode"`
}

// DevToConfig is the Dev.to binding.
type DevToConfig struct {
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
}

// HashnodeConfig is the Hashnode binding.
type HashnodeConfig struct {
	Token         string `mapstructure:"token" yaml:"token"`
	PublicationID string `mapstructure:"publication_id" yaml:"publication_id"`
	Endpoint      string `mapstructure:"endpoint" yaml:"endpoint"`
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
}

// LedgerConfig controls duplicate-publish prevention.
type LedgerConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// NotifyConfig lists shoutrrr service URLs that receive the run summary.
type NotifyConfig struct {
	URLs []string `mapstructure:"urls" yaml:"urls"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// HTTPConfig controls the shared HTTP client.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// secretEnv binds credential keys to their short, conventional variable
// names. CI secret stores expose these directly.
var secretEnv = map[string][]string{
	"platforms.devto.api_key":           {"CROSSPOST_DEVTO_API_KEY", "DEVTO_API_KEY"},
	"platforms.hashnode.token":          {"CROSSPOST_HASHNODE_TOKEN", "HASHNODE_TOKEN"},
	"platforms.hashnode.publication_id": {"CROSSPOST_HASHNODE_PUBLICATION_ID", "HASHNODE_PUBLICATION_ID"},
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Init resets any previous viper state.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName(AppName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.ConfigDir())
	}

	// Environment variable support: platforms.devto.endpoint -> CROSSPOST_PLATFORMS_DEVTO_ENDPOINT
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, envs := range secretEnv {
		_ = viper.BindEnv(append([]string{key}, envs...)...)
	}

	// Defaults
	viper.SetDefault("posts_dir", paths.DefaultPostsDir)
	viper.SetDefault("default_platforms", paths.Platforms())
	viper.SetDefault("platforms.devto.endpoint", paths.DefaultEndpoint(paths.PlatformDevTo))
	viper.SetDefault("platforms.devto.enabled", true)
	viper.SetDefault("platforms.hashnode.endpoint", paths.DefaultEndpoint(paths.PlatformHashnode))
	viper.SetDefault("platforms.hashnode.enabled", true)
	viper.SetDefault("ledger.enabled", false)
	viper.SetDefault("ledger.path", paths.DefaultLedgerPath)
	viper.SetDefault("notify.urls", []string{})
	viper.SetDefault("metrics.file", "")
	viper.SetDefault("http.timeout", DefaultHTTPTimeout)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
// The result is validated; all validation failures are joined into one error.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Implicit load: defaults plus environment.
		case path != "" && errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "validating config: %s", strings.Join(msgs, "; "))
	}

	return &cfg, nil
}

// FileUsed returns the config file viper read, or "" when none was found.
func FileUsed() string {
	return viper.ConfigFileUsed()
}
