package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/sizewatch/schema"
)

// Color variables for console output.
var (
	GrowthColor   = color.New(color.FgRed, color.Bold) // GrowthColor marks a significant size increase.
	WarningColor  = color.New(color.FgYellow)          // WarningColor marks a notable increase.
	ShrinkColor   = color.New(color.FgGreen)           // ShrinkColor marks any significant decrease.
	NewFileColor  = color.New(color.FgCyan)            // NewFileColor marks files that did not exist before.
	NeutralColor  = color.New(color.Faint)             // NeutralColor marks insignificant changes.
	HeadlineColor = color.New(color.Bold)              // HeadlineColor is used for totals.
)

// SeverityColor returns the console color for a severity band.
func SeverityColor(severity schema.Severity) *color.Color {
	switch severity {
	case schema.CriticalGrowth, schema.MajorGrowth:
		return GrowthColor
	case schema.WarningGrowth, schema.NotableGrowth:
		return WarningColor
	case schema.BestShrink, schema.GreatShrink, schema.GoodShrink, schema.MinorShrink:
		return ShrinkColor
	case schema.NewFileSeverity:
		return NewFileColor
	default:
		return NeutralColor
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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
		return ".sizewatch_history.db"
	}
	return filepath.Join(homeDir, ".sizewatch_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
