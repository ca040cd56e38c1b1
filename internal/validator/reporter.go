package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/crosspost/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// jsonReport is the JSON document written for one or more results.
type jsonReport struct {
	Valid    bool      `json:"valid"`
	Errors   int       `json:"errors"`
	Warnings int       `json:"warnings"`
	Results  []*Result `json:"results"`
}

// Report writes the validation results to the output. Nil results are skipped.
func (r *Reporter) Report(results ...*Result) error {
	nonNil := make([]*Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			nonNil = append(nonNil, res)
		}
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(nonNil)
	default:
		return r.reportText(nonNil)
	}
}

// reportJSON writes the results as JSON.
func (r *Reporter) reportJSON(results []*Result) error {
	report := jsonReport{Results: results}
	for _, res := range results {
		report.Errors += len(res.Errors())
		report.Warnings += len(res.Warnings())
	}
	report.Valid = report.Errors == 0

	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(report), "encoding JSON report")
}

// reportText writes the results as human-readable text, one block per post.
func (r *Reporter) reportText(results []*Result) error {
	for _, res := range results {
		r.reportOne(res)
	}
	return nil
}

func (r *Reporter) reportOne(result *Result) {
	name := result.Path
	if name == "" {
		name = "post"
	}

	errs := result.Errors()
	warnings := result.Warnings()
	infos := result.Infos()

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓"), name)
		for _, info := range infos {
			r.printIssue(info, color.FgHiBlack)
		}
		return
	}

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	mark := color.YellowString("!")
	if len(errs) > 0 {
		mark = color.RedString("✗")
	}
	fmt.Fprintf(r.out, "%s %s: %s\n", mark, name, strings.Join(summary, ", "))

	for _, e := range errs {
		r.printIssue(e, color.FgRed)
	}
	for _, w := range warnings {
		r.printIssue(w, color.FgYellow)
	}
	for _, info := range infos {
		r.printIssue(info, color.FgHiBlack)
	}
}

func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • field: message (context) [value]
	var sb strings.Builder
	sb.WriteString("  • ")

	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	}

	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		var ctxParts []string
		for k, v := range i.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%s", k, v))
		}
		// Sort for deterministic output
		sort.Strings(ctxParts)

		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(ctxParts, ", ")))
	}

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		// Truncate long values
		if len(valStr) > 50 {
			valStr = valStr[:47] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
