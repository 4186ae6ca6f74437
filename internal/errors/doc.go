// Package errors defines the sentinel errors shared across Totara.
//
// Callers wrap these with fmt.Errorf("...: %w", err) to add context and
// match them with errors.Is. The taxonomy keeps "malformed token",
// "undecodable material", and "authenticated decryption failure" distinct
// so callers can tell a corrupt document from a wrong key.
package errors
