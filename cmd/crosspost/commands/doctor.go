package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/crosspost/cmd/crosspost/commands/flags"
	"github.com/thoreinstein/crosspost/internal/cli"
	"github.com/thoreinstein/crosspost/internal/config"
	"github.com/thoreinstein/crosspost/internal/doctor"
	"github.com/thoreinstein/crosspost/internal/errors"
)

var (
	doctorJSON    bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "all", false,
		"show every check, including passed ones")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"tighten permissions on files that may hold credentials")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks on the crosspost configuration.

Checks the config and .env syntax, file permissions, platform credentials
(shown masked), the posts directory, the ledger, and notification URLs.

Output modes:
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	RunE: runDoctor,
}

// configLoadCheck reports a configuration that failed to load.
type configLoadCheck struct {
	err error
}

func (c configLoadCheck) Name() string     { return "config-load" }
func (c configLoadCheck) Category() string { return "config" }

func (c configLoadCheck) Run() *doctor.CheckResult {
	if c.err != nil {
		return &doctor.CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   doctor.SeverityError,
			Message:  c.err.Error(),
			FixHint:  "fix the values in crosspost.yaml or the CROSSPOST_* environment",
		}
	}
	msg := "using defaults and environment"
	if used := config.FileUsed(); used != "" {
		msg = "loaded " + used
	}
	return &doctor.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   doctor.SeverityPass,
		Message:  msg,
	}
}

// doctorRunner assembles the checks for the loaded configuration. When the
// configuration failed to load, only checks that do not depend on it run.
func doctorRunner() *doctor.Runner {
	runner := doctor.NewRunner()

	files := append([]string{config.FileUsed()}, config.DefaultEnvFiles...)
	runner.AddCheck(doctor.NewConfigSyntaxCheck(files...))
	runner.AddCheck(configLoadCheck{err: configLoadErr})

	if appConfig == nil {
		return runner
	}

	targets := []doctor.PathTarget{
		{Path: config.FileUsed(), Label: "config"},
		{Path: appConfig.PostsDir, Label: "posts", Dir: true, Required: true},
	}
	for _, f := range config.DefaultEnvFiles {
		targets = append(targets, doctor.PathTarget{Path: f, Label: "env", Secret: true})
	}
	if appConfig.Ledger.Enabled {
		targets = append(targets, doctor.PathTarget{Path: appConfig.Ledger.Path, Label: "ledger"})
	}
	runner.AddCheck(doctor.NewPathPermissionCheck(targets...))

	names, err := cli.ResolvePlatforms(flags.GetPlatformFlag(), appConfig)
	if err != nil {
		names = nil
	}
	runner.AddCheck(doctor.NewCredentialCheck(appConfig, names))
	runner.AddCheck(doctor.NewPostsCheck(appConfig.PostsDir))
	runner.AddCheck(doctor.NewLedgerCheck(appConfig.Ledger.Enabled, appConfig.Ledger.Path))
	runner.AddCheck(doctor.NewNotifyCheck(appConfig.Notify.URLs))

	return runner
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := doctorRunner()
	report := runner.Run()
	out := cmd.OutOrStdout()

	if doctorFix {
		fixes := runner.Fix()
		if !doctorJSON {
			outputFixes(out, fixes)
		}
		if len(fixes) > 0 {
			// Re-run so the report reflects the fixed state.
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(out, report); err != nil {
		return err
	}

	switch report.Worst() {
	case doctor.SeverityError:
		return errors.NewSystemError(errDoctorErrors, "")
	case doctor.SeverityWarning:
		return errors.NewUserError(errDoctorWarnings, "")
	}
	return nil
}

func outputFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "fixed: %s (%s)\n", f.Path, f.Description)
			continue
		}
		fmt.Fprintf(w, "not fixed: %s: %v\n", f.Path, f.Error)
	}
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	switch {
	case doctorJSON:
		return outputDoctorJSON(w, report)
	case quiet:
		return nil
	default:
		return outputDoctorText(w, report)
	}
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")
