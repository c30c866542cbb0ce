// Package style wraps the external style checker (ruff) behind a
// one-method interface so the engine never depends on the tool's
// invocation details.
package style

import (
	"context"

	"github.com/mvp-joe/doclint/internal/check"
)

// Checker runs an external style pass over a set of files and maps
// its findings into the shared violation shape.
type Checker interface {
	Check(ctx context.Context, files []string) ([]check.Violation, error)
}

// ruffDiagnostic is one entry of ruff's --output-format=json array.
type ruffDiagnostic struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Filename string       `json:"filename"`
	Location ruffLocation `json:"location"`
}

type ruffLocation struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}
