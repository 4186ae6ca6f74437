// Package audit provides a best-effort audit trail of Totara operations.
//
// Each keygen, encrypt, and decrypt run appends one JSON Lines entry to
// audit.jsonl next to the user config. Logging failures never fail the
// operation itself, and malformed lines are skipped when reading the log
// back.
package audit
