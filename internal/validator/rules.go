// Package validator applies docstring rules to extracted candidates
// and produces violations.
package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/doclint/internal/check"
	"github.com/mvp-joe/doclint/internal/extractor"
)

// Rule checks a single docstring candidate. Implementations must be
// pure: identical candidates yield identical violations.
type Rule interface {
	// ID returns the rule identifier used in violations.
	ID() string

	// Check returns the violations the candidate triggers, if any.
	// The FilePath field is filled in by the Validator.
	Check(c extractor.Candidate) []check.Violation
}

// LineLength flags docstring lines longer than Max code points.
// Trailing whitespace is trimmed before measuring; leading
// indentation counts because it affects rendered width. The limit is
// inclusive: a line of exactly Max characters is compliant.
type LineLength struct {
	Max int
}

func (r LineLength) ID() string { return check.RuleLineLength }

func (r LineLength) Check(c extractor.Candidate) []check.Violation {
	if !c.HasDocstring() {
		return nil
	}

	var violations []check.Violation
	for i, line := range logicalLines(c) {
		trimmed := strings.TrimRight(line, " \t")
		length := utf8.RuneCountInString(trimmed)
		if length <= r.Max {
			continue
		}
		violations = append(violations, check.Violation{
			Line:     c.StartLine + i,
			RuleID:   r.ID(),
			Message:  fmt.Sprintf("docstring line too long (%d > %d)", length, r.Max),
			Severity: check.SeverityError,
		})
	}
	return violations
}

// MissingDocstring flags scopes whose first statement is not a
// string literal. Registered only when skip_missing_docstrings is
// disabled.
type MissingDocstring struct{}

func (MissingDocstring) ID() string { return check.RuleMissingDocstring }

func (r MissingDocstring) Check(c extractor.Candidate) []check.Violation {
	if c.HasDocstring() {
		return nil
	}
	return []check.Violation{{
		Line:     c.StartLine,
		RuleID:   r.ID(),
		Message:  fmt.Sprintf("%s %q has no docstring", c.Kind, c.Name),
		Severity: check.SeverityWarning,
	}}
}

// Summary enforces that a docstring opens with its summary on the
// first line. Empty docstrings are exempt; those are the
// MissingDocstring policy's concern.
type Summary struct{}

func (Summary) ID() string { return check.RuleSummary }

func (r Summary) Check(c extractor.Candidate) []check.Violation {
	if !c.HasDocstring() || strings.TrimSpace(*c.Text) == "" {
		return nil
	}

	lines := logicalLines(c)
	if strings.TrimSpace(lines[0]) != "" {
		return nil
	}
	return []check.Violation{{
		Line:     c.StartLine,
		RuleID:   r.ID(),
		Message:  "docstring summary should start on the first line",
		Severity: check.SeverityError,
	}}
}

// Period requires the summary block to end with a period.
type Period struct{}

func (Period) ID() string { return check.RulePeriod }

func (r Period) Check(c extractor.Candidate) []check.Violation {
	if !c.HasDocstring() {
		return nil
	}

	summary := summaryBlock(c)
	if len(summary) == 0 || strings.HasSuffix(summary[len(summary)-1], ".") {
		return nil
	}
	return []check.Violation{{
		Line:     c.StartLine,
		RuleID:   r.ID(),
		Message:  "docstring summary should end with a period",
		Severity: check.SeverityWarning,
	}}
}

// summaryBlock returns the run of non-blank lines at the top of the
// docstring, leading blank lines skipped.
func summaryBlock(c extractor.Candidate) []string {
	var summary []string
	for _, line := range logicalLines(c) {
		if strings.TrimSpace(line) == "" {
			if len(summary) > 0 {
				break
			}
			continue
		}
		summary = append(summary, strings.TrimSpace(line))
	}
	return summary
}

// logicalLines splits decoded docstring text on newlines. Escape
// decoding has already happened in the extractor, so a source-level
// line continuation yields one logical line here.
func logicalLines(c extractor.Candidate) []string {
	return strings.Split(*c.Text, "\n")
}
