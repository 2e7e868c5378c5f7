// Package output provides small stdout/stderr helpers for CLI commands.
package output

import (
	"fmt"
	"os"
)

// Error prints an error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// Warn prints a warning message to stderr.
func Warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// Success prints a confirmation message to stdout.
func Success(format string, args ...interface{}) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// Info prints an informational message to stdout.
func Info(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
