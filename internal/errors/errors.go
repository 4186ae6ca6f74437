package errors

import "errors"

// Token errors indicate a string that claims to be encrypted but is not
// well formed. These surface before any cryptography runs.
var (
	// ErrInvalidTokenFormat indicates a string with the encrypted prefix
	// failed the token grammar.
	ErrInvalidTokenFormat = errors.New("invalid encrypted token format")
)

// Decoding errors indicate textual key or token material could not be
// turned into the raw bytes the primitive expects.
var (
	// ErrDecodingFailed indicates base64 or hex decoding of a token field
	// or key failed, or the decoded value has the wrong length.
	ErrDecodingFailed = errors.New("failed to decode key material")
)

// Cryptographic errors indicate the authenticated-encryption primitive
// rejected its input.
var (
	// ErrDecryptionFailed indicates the box could not be opened: wrong key,
	// tampered ciphertext, or mismatched nonce.
	ErrDecryptionFailed = errors.New("failed to decrypt value")

	// ErrEncryptionFailed indicates a value could not be sealed.
	ErrEncryptionFailed = errors.New("failed to encrypt value")
)

// Document errors indicate issues with the document itself or with
// obtaining the key needed to process it.
var (
	// ErrMissingPublicKey indicates the document has no _public_key field.
	ErrMissingPublicKey = errors.New("document is missing _public_key")

	// ErrKeyResolutionFailed indicates the key resolver could not supply a
	// private key for the document's public key.
	ErrKeyResolutionFailed = errors.New("failed to resolve private key")

	// ErrInvalidDocument indicates the document is not valid JSON or its
	// root is not an object.
	ErrInvalidDocument = errors.New("document root is not a JSON object")
)

// Key management errors indicate issues locating or storing key material.
var (
	// ErrKeyNotFound indicates no private key is known for a public key.
	ErrKeyNotFound = errors.New("private key not found for public key")

	// ErrKeypairExists indicates a keypair file already exists for this
	// public key.
	ErrKeypairExists = errors.New("keypair already exists")
)
