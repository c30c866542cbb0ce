package cli

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements progress reporting with a progress
// bar on stderr, so stdout stays parseable.
type CLIProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Checking files"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			os.Stderr.WriteString("\n")
		}),
	)
}

func (c *CLIProgressReporter) OnFileChecked(fileName string) {
	if c.quiet || c.fileBar == nil {
		return
	}
	c.fileBar.Add(1)
}
