package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled, color-prefixed messages for CLI output.
type Logger struct {
	// Verbose enables info messages.
	Verbose bool

	// Debug enables debug messages and implies Verbose.
	Debug bool
}

// Infof logs an informational message when verbose or debug is enabled.
func (l Logger) Infof(format string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(os.Stdout, color.GreenString("[info] ")+format+"\n", args...)
	}
}

// Debugf logs a debug message when debug is enabled.
func (l Logger) Debugf(format string, args ...any) {
	if l.Debug {
		fmt.Fprintf(os.Stdout, color.CyanString("[debug] ")+format+"\n", args...)
	}
}

// Warnf logs a warning. Warnings are always shown.
func (l Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.YellowString("[warn] ")+format+"\n", args...)
}

// Errorf logs an error. Errors are always shown.
func (l Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("[error] ")+format+"\n", args...)
}
