// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a quality report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.QualityReport, cfg *contract.Config, duration time.Duration) error {
	return writeReportResults(report, cfg, duration)
}

// WriteRuns prints persisted run history using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeRunResults(runs, cfg)
}

// getMaxDiagnosticWidth calculates the maximum width for the diagnostic
// column in table output based on terminal width.
func getMaxDiagnosticWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the Criterion, Score and Label columns plus table
	// borders, separators and padding.
	available := termWidth - 45
	if available < 15 {
		return 15
	}
	if available > 90 {
		return 90
	}
	return available
}

// truncateText truncates a string to a maximum width with an ellipsis suffix.
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
