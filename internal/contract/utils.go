package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Quality label constants.
const (
	ExcellentValue = "Excellent" // Score 5
	GoodValue      = "Good"      // Score 4
	FairValue      = "Fair"      // Score 3
	PoorValue      = "Poor"      // Score 2
	CriticalValue  = "Critical"  // Score 1
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)   // excellentColor represents a clean bill of health.
	GoodColor      = color.New(color.FgCyan)                // goodColor represents minor findings.
	FairColor      = color.New(color.FgYellow)              // fairColor represents standard caution, not bold.
	PoorColor      = color.New(color.FgMagenta, color.Bold) // poorColor represents strong, distinct warning.
	CriticalColor  = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
)

// GetPlainLabel returns a plain text label for a criterion score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score int) string {
	switch {
	case score >= 5:
		return ExcellentValue
	case score >= 4:
		return GoodValue
	case score >= 3:
		return FairValue
	case score >= 2:
		return PoorValue
	default:
		return CriticalValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score int) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	case PoorValue:
		return PoorColor.Sprint(text)
	default: // "Critical"
		return CriticalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tablequal_history.db"
	}
	return filepath.Join(homeDir, ".tablequal_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
