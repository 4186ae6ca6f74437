// Package workflows provides high-level orchestration for Totara
// commands.
//
// Each workflow implements one command's business logic, independent of
// CLI concerns like flag parsing, spinners, and output formatting. A
// workflow loads what it needs from explicit options, performs the
// operation through the core packages, records an audit entry, and
// returns a typed result.
//
// # Available Workflows
//
//   - Keygen: generates a keypair and stores it in the keys directory
//   - Encrypt: encrypts a document's plain string values in place
//   - Decrypt: decrypts a document and returns the plaintext form
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors, so the CLI
// layer can pick user-facing messages with errors.Is instead of string
// matching.
//
// # Context Usage
//
// Workflow functions accept a context.Context as their first parameter
// for parity across commands. The work itself is synchronous CPU-bound
// walking plus one key lookup; a resolver that performs remote lookups
// is the right place to honor cancellation.
package workflows
