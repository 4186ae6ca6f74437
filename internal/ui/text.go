package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies one kind of semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the
// resulting string.
func (f Formatter) Sprintf(format string, a ...any) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor reports whether color output should be disabled, honoring both
// the NO_COLOR convention (https://no-color.org/) and fatih/color's own
// terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for the kinds of output Totara produces.
var (
	// Code formats runnable commands. Yellow, `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file or directory paths. Yellow, undecorated without
	// color since paths read as paths on their own.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Success formats success indicators. Green, unchanged without color.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats error indicators and messages. Red, unchanged without
	// color.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Info formats hints and directional indicators. Cyan, unchanged
	// without color.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats emphasized values such as key names and
	// environments. Cyan, 'single quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}
)
