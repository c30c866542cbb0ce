// Package cli wires the doclint commands together with cobra.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ErrViolationsFound signals a completed run that found violations or
// parse errors. Execute maps it to exit code 1; every other error is
// an invocation error and exits 2.
var ErrViolationsFound = errors.New("violations found")

var (
	cfgFile string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "doclint",
	Short: "doclint - docstring quality gate for Python sources",
	Long: `doclint locates every docstring in a Python codebase via syntax-tree
inspection and enforces a maximum line length, alongside an external
style checker pass (ruff).

Exit codes:
  0 = all checks passed
  1 = violations found or a file failed to parse
  2 = invocation error (bad arguments, bad config, no files found)`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrViolationsFound) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .doclint.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress summaries and progress (CI mode)")
}
