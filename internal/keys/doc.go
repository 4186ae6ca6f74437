// Package keys provides private-key resolution and keypair storage for
// encrypted documents.
//
// The core decryption walk asks a resolver for the private key matching a
// document's _public_key exactly once per document. This package supplies
// the standard resolvers:
//
//   - EnvResolver: reads the key from an injected environment lookup
//   - DirResolver: reads the key from a keys directory on disk
//   - ChainResolver: tries resolvers in order, first success wins
//
// # Keys Directory Layout
//
// The keys directory holds one file per public key:
//
//   - Filename: the public key text, with the base64 characters '+' and
//     '/' mapped to their URL-safe forms '-' and '_' so every key is a
//     valid single-segment filename
//   - Content: the hex private key, surrounding whitespace ignored
//   - Permissions: 0600, directory 0700
//
// # Ambient State
//
// Nothing in this package reads the process environment directly.
// EnvResolver takes a lookup function; the CLI passes os.LookupEnv.
package keys
