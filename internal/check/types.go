// Package check defines the shared violation data model used by the
// validator, the style checker wrapper, the engine, and the reporters.
package check

import "sort"

// Severity classifies how a violation affects the run outcome.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule IDs emitted by doclint itself. Style checker violations use
// "style/<code>" IDs (e.g. "style/E501").
const (
	RuleLineLength       = "docstring-line-length"
	RuleMissingDocstring = "missing-docstring"
	RuleSummary          = "docstring-summary"
	RulePeriod           = "docstring-period"
	RuleParseError       = "parse-error"
	RuleFileError        = "file-error"
)

// Violation is a single finding at a position in a file.
type Violation struct {
	FilePath string   `json:"file_path"`
	Line     int      `json:"line"`
	Column   int      `json:"column,omitempty"`
	RuleID   string   `json:"rule_id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// CheckResult holds all violations found in one file. Checked is
// false when the file could not be read or parsed; such results still
// carry the describing violation.
type CheckResult struct {
	FilePath   string      `json:"file_path"`
	Violations []Violation `json:"violations"`
	Checked    bool        `json:"checked"`
}

// Sort orders violations by (line, rule ID, column) for stable output.
func (r *CheckResult) Sort() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Column < b.Column
	})
}

// RunSummary aggregates per-file results for a whole run.
type RunSummary struct {
	TotalFiles      int           `json:"total_files"`
	TotalViolations int           `json:"total_violations"`
	Results         []CheckResult `json:"results"`
}

// Add appends a result and updates the counters.
func (s *RunSummary) Add(r CheckResult) {
	r.Sort()
	s.Results = append(s.Results, r)
	s.TotalFiles++
	s.TotalViolations += len(r.Violations)
}

// Clean reports whether the run found no violations and every file
// was parsed successfully.
func (s *RunSummary) Clean() bool {
	if s.TotalViolations > 0 {
		return false
	}
	for _, r := range s.Results {
		if !r.Checked {
			return false
		}
	}
	return true
}

// ExitCode maps the aggregate outcome to the process exit status:
// 0 for a clean run, 1 when violations were found or a file failed to
// parse. Invocation errors (exit 2) are decided at the CLI boundary.
func (s *RunSummary) ExitCode() int {
	if s.Clean() {
		return 0
	}
	return 1
}

// SortResults orders results lexicographically by file path so that
// aggregation is deterministic regardless of collection order.
func (s *RunSummary) SortResults() {
	sort.SliceStable(s.Results, func(i, j int) bool {
		return s.Results[i].FilePath < s.Results[j].FilePath
	})
}
