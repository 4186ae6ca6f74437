// Package ui provides semantic text formatting for CLI output.
//
// Formatters name the kind of content rather than a color, so commands
// say ui.Path.Sprint(file) instead of "yellow". When colors are disabled
// (NO_COLOR, dumb terminal, not a TTY) the formatters fall back to plain
// text decorations such as backticks for code.
package ui
