// Package report formats aggregated check results for humans and
// machines. Output is deterministic: identical input produces
// byte-identical output.
package report

import (
	"fmt"
	"io"

	"github.com/mvp-joe/doclint/internal/check"
)

// TextReporter renders a run summary as plain text: a path header per
// file with findings, one line per violation, then a closing summary
// line.
type TextReporter struct {
	// Quiet suppresses the summary line so only violations print.
	Quiet bool
}

// Report writes the summary to w. Results arrive sorted by path and
// violations by (line, rule ID), so iteration order is already the
// output order.
func (r *TextReporter) Report(w io.Writer, summary *check.RunSummary) error {
	filesWithViolations := 0

	for _, result := range summary.Results {
		if len(result.Violations) == 0 {
			continue
		}
		filesWithViolations++

		if _, err := fmt.Fprintln(w, result.FilePath); err != nil {
			return err
		}
		for _, v := range result.Violations {
			if _, err := fmt.Fprintf(w, "  %d:%d  %s  %s  %s\n",
				v.Line, v.Column, v.Severity, v.RuleID, v.Message); err != nil {
				return err
			}
		}
	}

	if r.Quiet {
		return nil
	}

	if summary.Clean() {
		_, err := fmt.Fprintf(w, "✓ all checks passed (%d %s)\n",
			summary.TotalFiles, plural(summary.TotalFiles, "file", "files"))
		return err
	}

	_, err := fmt.Fprintf(w, "%d %s in %d %s (%d %s checked)\n",
		summary.TotalViolations, plural(summary.TotalViolations, "violation", "violations"),
		filesWithViolations, plural(filesWithViolations, "file", "files"),
		summary.TotalFiles, plural(summary.TotalFiles, "file", "files"))
	return err
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
