package report

import (
	"encoding/json"
	"io"

	"github.com/mvp-joe/doclint/internal/check"
)

// JSONReporter renders a run summary as indented JSON for tooling.
type JSONReporter struct{}

// Report encodes the summary to w. Struct field order makes the
// encoding deterministic.
func (r *JSONReporter) Report(w io.Writer, summary *check.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
