// Package logger provides leveled CLI logging for Totara commands.
//
// Verbosity is controlled by the --verbose and --debug flags. Without
// flags only warnings and errors are shown; --verbose adds info messages
// and --debug adds everything.
//
// The core document packages never log. Logging belongs to the command
// and workflow layers, which create a Logger in PersistentPreRun and pass
// it down.
package logger
