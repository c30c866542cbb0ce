// Package engine drives a check run: file discovery, the per-file
// extract→validate pipeline, the external style pass, and result
// aggregation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mvp-joe/doclint/internal/check"
	"github.com/mvp-joe/doclint/internal/config"
	"github.com/mvp-joe/doclint/internal/extractor"
	"github.com/mvp-joe/doclint/internal/style"
	"github.com/mvp-joe/doclint/internal/validator"
)

// ErrNoFiles indicates discovery matched nothing; the CLI treats
// this as an invocation error.
var ErrNoFiles = errors.New("no files matched")

// ProgressReporter receives run progress callbacks. Implementations
// must tolerate being called from a single goroutine only.
type ProgressReporter interface {
	OnDiscoveryComplete(totalFiles int)
	OnFileChecked(filePath string)
}

// NoopProgress discards all progress events.
type NoopProgress struct{}

func (NoopProgress) OnDiscoveryComplete(int) {}
func (NoopProgress) OnFileChecked(string) {}

// Engine orchestrates one check run over a set of paths.
type Engine struct {
	cfg       *config.Config
	discovery *Discovery
	extract   *extractor.Extractor
	validate  *validator.Validator
	styler    style.Checker
	progress  ProgressReporter
}

// Option customizes an Engine.
type Option func(*Engine)

// WithStyleChecker overrides the external style checker. Passing nil
// disables the style pass regardless of configuration.
func WithStyleChecker(c style.Checker) Option {
	return func(e *Engine) { e.styler = c }
}

// WithProgress attaches a progress reporter.
func WithProgress(p ProgressReporter) Option {
	return func(e *Engine) { e.progress = p }
}

// New builds an engine from configuration. The default style checker
// is ruff on PATH; tests swap it via WithStyleChecker.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	discovery, err := NewDiscovery(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		discovery: discovery,
		extract:   extractor.New(),
		validate: validator.New(validator.Options{
			MaxLineLength:        cfg.MaxLineLength,
			SkipMissingDocstring: cfg.SkipMissingDocstrings,
			CheckSummary:         cfg.CheckSummary,
			RequirePeriod:        cfg.RequirePeriod,
		}),
		progress: NoopProgress{},
	}
	if cfg.EnableStyleCheck {
		e.styler = style.NewRuffChecker(cfg.StyleCheckTimeout, false)
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run checks every file the given paths resolve to and returns the
// aggregated summary. Per-file failures (unreadable files, syntax
// errors) become results with Checked=false; only invocation-level
// problems are returned as errors.
func (e *Engine) Run(ctx context.Context, paths []string) (*check.RunSummary, error) {
	files, err := e.discovery.Resolve(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoFiles, paths)
	}

	e.progress.OnDiscoveryComplete(len(files))

	summary := &check.RunSummary{}
	byPath := make(map[string]int, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result := e.checkFile(file)
		byPath[file] = len(summary.Results)
		summary.Add(result)
		e.progress.OnFileChecked(file)
	}

	if e.styler != nil {
		e.mergeStyleViolations(ctx, files, summary, byPath)
	}

	summary.SortResults()
	return summary, nil
}

// checkFile runs the extract→validate pipeline for one file.
func (e *Engine) checkFile(filePath string) check.CheckResult {
	result := check.CheckResult{FilePath: filePath, Violations: []check.Violation{}}

	source, err := os.ReadFile(filePath)
	if err != nil {
		result.Violations = append(result.Violations, check.Violation{
			FilePath: filePath,
			Line:     1,
			RuleID:   check.RuleFileError,
			Message:  fmt.Sprintf("cannot read file: %v", err),
			Severity: check.SeverityError,
		})
		return result
	}

	candidates, err := e.extract.Extract(source)
	if err != nil {
		ruleID := check.RuleFileError
		if errors.Is(err, extractor.ErrParse) {
			ruleID = check.RuleParseError
		}
		result.Violations = append(result.Violations, check.Violation{
			FilePath: filePath,
			Line:     1,
			RuleID:   ruleID,
			Message:  err.Error(),
			Severity: check.SeverityError,
		})
		return result
	}

	violations, err := e.validate.Validate(filePath, candidates)
	if err != nil {
		// Contract violation between extractor and validator. Not a
		// user-facing finding; the file is reported as unchecked.
		log.Printf("internal error checking %s: %v", filePath, err)
		return result
	}

	result.Checked = true
	result.Violations = violations
	return result
}

// mergeStyleViolations runs the external style pass over the whole
// file list and merges its findings into the matching results. A
// failing style checker degrades to a warning; the docstring pass
// results stand.
func (e *Engine) mergeStyleViolations(ctx context.Context, files []string, summary *check.RunSummary, byPath map[string]int) {
	violations, err := e.styler.Check(ctx, files)
	if err != nil {
		log.Printf("warning: style check skipped: %v", err)
		return
	}

	for _, v := range violations {
		idx, ok := byPath[v.FilePath]
		if !ok {
			// Style checkers may report absolute paths differently;
			// drop findings for files outside this run.
			continue
		}
		summary.Results[idx].Violations = append(summary.Results[idx].Violations, v)
		summary.TotalViolations++
	}

	for i := range summary.Results {
		summary.Results[i].Sort()
	}
}
