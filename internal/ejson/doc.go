// Package ejson implements the encrypted-JSON document format used by
// Totara to distribute configuration secrets.
//
// An encrypted document is an ordinary JSON object whose sensitive string
// values have been replaced by tagged ciphertext tokens, plus one
// mandatory root field, _public_key, naming the public key the document
// was encrypted for. Documents in this form are safe to commit to version
// control; only holders of the matching private key can recover the
// plaintext.
//
// # Token Format
//
// Each encrypted value is a single string with the exact grammar:
//
//	EJ[<schema digit>:<44-char base64 public key>:<32-char base64 nonce>:<base64 ciphertext>]
//
// The embedded public key is the encrypter's ephemeral public key, not
// the document's _public_key. The nonce is 24 raw bytes, the public key
// 32 raw bytes. The ciphertext is not validated as base64 at parse time;
// bad base64 surfaces as a decoding error when the box is opened.
//
// # Cryptography
//
// Values are sealed with NaCl box (Curve25519 key agreement plus
// XSalsa20-Poly1305), which provides confidentiality, integrity, and
// authenticity in a single primitive. Opening a box fails cleanly when
// the key is wrong or the ciphertext has been tampered with; that failure
// is distinguishable from a malformed token or undecodable key material.
//
// # Decryption
//
// DecryptDocument walks the parsed object tree depth-first and replaces
// every token-valued field with its plaintext. The private key is
// obtained once per document, before traversal, from a caller-supplied
// KeyResolver. Any failure aborts the whole operation; a partially
// decrypted document is never returned.
//
// Mapping keys that begin with an underscore are treated as defaults:
// "_name" seeds a missing sibling "name" with its verbatim value.
// Underscore-keyed values themselves are passed through untouched, which
// also keeps _public_key stable across encrypt/decrypt cycles.
//
// This package never logs and never reads ambient process state.
package ejson
