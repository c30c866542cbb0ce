package style

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mvp-joe/doclint/internal/check"
)

// DefaultTimeout bounds a single ruff invocation.
const DefaultTimeout = 30 * time.Second

// RuffChecker shells out to ruff and parses its JSON diagnostics.
type RuffChecker struct {
	// Binary is the executable to invoke, "ruff" by default.
	Binary string

	// Timeout bounds the subprocess, DefaultTimeout when zero.
	Timeout time.Duration

	// Fix asks ruff to rewrite fixable violations before reporting
	// what remains.
	Fix bool
}

// NewRuffChecker returns a checker using the ruff binary on PATH.
func NewRuffChecker(timeout time.Duration, fix bool) *RuffChecker {
	return &RuffChecker{Binary: "ruff", Timeout: timeout, Fix: fix}
}

// Check runs ruff over files and returns its findings as violations.
// A non-zero exit with parseable output means violations were found,
// not that the tool crashed. Errors are returned only when the
// process cannot start, times out, or produces unparseable output;
// callers degrade by skipping the style pass.
func (r *RuffChecker) Check(ctx context.Context, files []string) ([]check.Violation, error) {
	if len(files) == 0 {
		return nil, nil
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"check", "--output-format=json"}
	if r.Fix {
		args = append(args, "--fix")
	}
	args = append(args, files...)

	cmd := exec.CommandContext(execCtx, r.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if execCtx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("style check timed out after %s", timeout)
	}
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			// The process never ran: binary missing, permissions, etc.
			return nil, fmt.Errorf("style checker unavailable: %w", err)
		}
		// Exit code 1 is ruff's "violations found". Anything else
		// with an empty report is a genuine failure.
		if stdout.Len() == 0 {
			return nil, fmt.Errorf("style checker failed: %s", strings.TrimSpace(stderr.String()))
		}
	}

	return parseDiagnostics(stdout.Bytes())
}

// parseDiagnostics maps ruff's JSON array into violations. Empty
// output means no findings.
func parseDiagnostics(data []byte) ([]check.Violation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var diags []ruffDiagnostic
	if err := json.Unmarshal(data, &diags); err != nil {
		return nil, fmt.Errorf("unparseable style checker output: %w", err)
	}

	violations := make([]check.Violation, 0, len(diags))
	for _, d := range diags {
		violations = append(violations, check.Violation{
			FilePath: d.Filename,
			Line:     d.Location.Row,
			Column:   d.Location.Column,
			RuleID:   "style/" + d.Code,
			Message:  d.Message,
			Severity: severityFor(d.Code),
		})
	}
	return violations, nil
}

// severityFor maps pycodestyle warning codes to warning severity,
// everything else to error.
func severityFor(code string) check.Severity {
	if strings.HasPrefix(code, "W") {
		return check.SeverityWarning
	}
	return check.SeverityError
}
