// Package logging provides structured logging for the crosspost CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, secret redaction in the text handler, and helpers for testing.
// All loggers are based on the standard library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("publishing", "post", "posts/hello.md", "platform", "devto")
//
// The root command stores the configured logger in the command context;
// packages retrieve it with [FromContext].
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		ctx := logging.NewContext(t.Context(), logging.ForTest(t))
//		// logs appear in test output on failure
//	}
package logging
