// Package commands implements the CLI commands for crosspost.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/cmd"
	"github.com/thoreinstein/crosspost/cmd/crosspost/commands/flags"
	"github.com/thoreinstein/crosspost/internal/cli"
	"github.com/thoreinstein/crosspost/internal/config"
	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/logging"
	"github.com/thoreinstein/crosspost/internal/paths"
	"github.com/thoreinstein/crosspost/internal/platform"
)

// debugEnv raises verbosity when no -v flag is given: 1 or true for debug,
// 2 for trace.
const debugEnv = config.EnvPrefix + "_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// logCloser closes the --log-file handle once the command finishes.
var logCloser io.Closer

// appConfig is the configuration loaded before every command runs.
var appConfig *config.Config

// configLoadErr holds the load failure doctor reports instead of aborting on.
var configLoadErr error

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(flags.PlatformFlagVar(), "platform", "p", nil,
		`target platform(s): devto, hashnode (default: default_platforms from config)`)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./crosspost.yaml, then $XDG_CONFIG_HOME/crosspost/crosspost.yaml)")

	rootCmd.Version = cmd.Version
	platform.UserAgent = cmd.UserAgent()
	rootCmd.SetVersionTemplate("crosspost version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "crosspost",
	Short: "Publish markdown posts to Dev.to and Hashnode",
	Long: `crosspost publishes markdown posts with frontmatter to Dev.to and Hashnode.

A post is sent when its frontmatter sets crosspost: true or published: true.
published: true publishes publicly; crosspost alone creates a draft. Each
platform is called independently, so a failure on one never stops the other.

Credentials come from the environment, a .env file, or crosspost.yaml:
  DEVTO_API_KEY, HASHNODE_TOKEN, HASHNODE_PUBLICATION_ID`,
	Example: `  # Publish posts changed since the previous push (CI)
  crosspost publish --since "$BEFORE_SHA"

  # See what would be sent
  crosspost publish --dry-run posts/hello.md

  # Check credentials and configuration
  crosspost doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if skipConfig(cmd) {
			return nil
		}
		if err := loadConfig(cmd); err != nil {
			if cmd != doctorCmd {
				return err
			}
			configLoadErr = err
			return nil
		}
		return validatePlatformFlag(cmd, args)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	primary := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}).Handler()

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		closeLogFile()
		logCloser = f
		// File output uses JSON format
		handler = logging.NewMultiHandler(primary, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// skipConfig reports whether cmd runs without configuration.
func skipConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion":
		return true
	}
	return false
}

// loadConfig loads .env files and the config file into appConfig.
func loadConfig(cmd *cobra.Command) error {
	logger := logging.FromContext(cmd.Context())
	appConfig = nil
	configLoadErr = nil

	loaded, err := config.LoadEnv()
	if err != nil {
		return errors.NewConfigError(err)
	}
	for _, f := range loaded {
		logger.Debug("loaded environment file", "path", f)
	}

	config.Init()
	cfg, err := config.Load(configFile)
	if err != nil {
		return errors.NewConfigError(err)
	}
	if used := config.FileUsed(); used != "" {
		logger.Debug("loaded config file", "path", used)
	}

	appConfig = cfg
	return nil
}

// validatePlatformFlag checks that all specified platforms are valid.
func validatePlatformFlag(_ *cobra.Command, _ []string) error {
	var invalid []string
	for _, p := range flags.GetPlatformFlag() {
		if !paths.ValidPlatform(strings.ToLower(strings.TrimSpace(p))) {
			invalid = append(invalid, p)
		}
	}

	if len(invalid) > 0 {
		err := errors.Newf("invalid platform(s): %s (valid: %s)",
			strings.Join(invalid, ", "),
			strings.Join(paths.Platforms(), ", "))
		return errors.NewUserError(err, "Run 'crosspost --help' to see valid platforms")
	}

	return nil
}

// selectedPlatforms resolves --platform against the loaded configuration.
func selectedPlatforms() ([]string, error) {
	names, err := cli.ResolvePlatforms(flags.GetPlatformFlag(), appConfig)
	if err != nil {
		return nil, errors.NewUserError(err, "Enable a platform in crosspost.yaml or pass --platform")
	}
	return names, nil
}

func closeLogFile() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which aborts outstanding platform requests.
func Execute() error {
	defer closeLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
