package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/doclint/internal/check"
	"github.com/mvp-joe/doclint/internal/config"
	"github.com/mvp-joe/doclint/internal/engine"
	"github.com/mvp-joe/doclint/internal/report"
	"github.com/mvp-joe/doclint/internal/style"
)

var (
	maxLineLength int
	noStyleCheck  bool
	fixFlag       bool
	watchFlag     bool
	formatFlag    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check docstrings and style in Python files",
	Long: `Check runs the docstring validator over every Python file the given
paths resolve to, plus an external style checker pass (ruff) unless
disabled.

The docstring validator flags any docstring line longer than the
configured limit (default 72 characters, counted in Unicode code
points). Directories are expanded recursively using the configured
include/exclude patterns.

Examples:
  # Check the current directory
  doclint check

  # Check specific paths with a custom limit
  doclint check --max-line-length 79 src/ tools/build.py

  # Docstring pass only, machine-readable output
  doclint check --no-style-check --format json .

  # Re-check automatically on file changes
  doclint check --watch src/
`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&maxLineLength, "max-line-length", 0, "maximum docstring line length (default from config, 72)")
	checkCmd.Flags().BoolVar(&noStyleCheck, "no-style-check", false, "skip the external style checker pass")
	checkCmd.Flags().BoolVar(&fixFlag, "fix", false, "let the style checker fix violations where possible")
	checkCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for file changes and re-check")
	checkCmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text or json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling check...")
		cancel()
	}()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "checking %v (max line length %d, style check %v)\n",
			paths, cfg.MaxLineLength, cfg.EnableStyleCheck)
	}

	reporter, err := newReporter(formatFlag)
	if err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithProgress(newProgress()),
	}
	if cfg.EnableStyleCheck {
		opts = append(opts, engine.WithStyleChecker(style.NewRuffChecker(cfg.StyleCheckTimeout, fixFlag)))
	}

	eng, err := engine.New(cfg, opts...)
	if err != nil {
		return err
	}

	if watchFlag {
		return runWatch(ctx, eng, reporter, paths)
	}

	summary, err := eng.Run(ctx, paths)
	if err != nil {
		return err
	}

	if err := reporter.Report(os.Stdout, summary); err != nil {
		return err
	}

	if summary.ExitCode() != 0 {
		return ErrViolationsFound
	}
	return nil
}

// runWatch re-runs the check pipeline whenever a watched file
// changes. Watch mode is interactive: violations are reported per
// run, and the process only stops on interrupt.
func runWatch(ctx context.Context, eng *engine.Engine, reporter summaryReporter, paths []string) error {
	err := eng.Watch(ctx, paths, func() {
		summary, runErr := eng.Run(ctx, paths)
		if runErr != nil {
			if ctx.Err() == nil {
				fmt.Fprintln(os.Stderr, "error:", runErr)
			}
			return
		}
		if reportErr := reporter.Report(os.Stdout, summary); reportErr != nil {
			fmt.Fprintln(os.Stderr, "error:", reportErr)
		}
	})
	if err != nil && ctx.Err() != nil {
		// Interrupted: partial results were already reported.
		return ErrViolationsFound
	}
	return err
}

// loadConfig resolves configuration from defaults, config file,
// environment, and finally CLI flags (highest priority).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var loader config.Loader
	if cfgFile != "" {
		loader = config.NewFileLoader(cfgFile)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		loader = config.NewLoader(wd)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	// Flags override file and environment settings.
	if cmd.Flags().Changed("max-line-length") {
		cfg.MaxLineLength = maxLineLength
	}
	if noStyleCheck {
		cfg.EnableStyleCheck = false
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newProgress builds the progress reporter for a run. The bar shows
// on every interactive run; only --quiet suppresses it.
func newProgress() engine.ProgressReporter {
	return NewCLIProgressReporter(quiet)
}

// summaryReporter is implemented by both output formats.
type summaryReporter interface {
	Report(w io.Writer, summary *check.RunSummary) error
}

func newReporter(format string) (summaryReporter, error) {
	switch format {
	case "text":
		return &report.TextReporter{Quiet: quiet}, nil
	case "json":
		return &report.JSONReporter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (valid: text, json)", format)
	}
}
