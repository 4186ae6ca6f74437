package ejson

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/nacl/box"

	kerrors "github.com/PolarWolf314/totara/internal/errors"
)

const (
	// KeySize is the raw size of a Curve25519 key.
	KeySize = 32

	// NonceSize is the raw size of a box nonce.
	NonceSize = 24
)

// OpenBox decrypts one sealed value. The ciphertext, nonce, and sender
// public key arrive in the textual encodings the token format uses; the
// recipient private key is hex. Decoding failures surface as
// ErrDecodingFailed before the primitive runs; an authentic rejection by
// the primitive (wrong key, tampered ciphertext, mismatched nonce)
// surfaces as ErrDecryptionFailed.
func OpenBox(ciphertext, nonce, senderPublicKey, recipientPrivateKey string) (string, error) {
	rawCiphertext, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not valid base64: %v", kerrors.ErrDecodingFailed, err)
	}

	rawNonce, err := decodeNonce(nonce)
	if err != nil {
		return "", err
	}

	publicKey, err := DecodePublicKey(senderPublicKey)
	if err != nil {
		return "", err
	}

	privateKey, err := DecodePrivateKey(recipientPrivateKey)
	if err != nil {
		return "", err
	}

	plaintext, ok := box.Open(nil, rawCiphertext, rawNonce, publicKey, privateKey)
	if !ok {
		return "", kerrors.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// SealBox is the encrypting counterpart of OpenBox. It seals a UTF-8
// plaintext under the recipient's public key and the sender's private
// key, returning the ciphertext as base64. The nonce must never be reused
// with the same key pair.
func SealBox(plaintext, nonce, recipientPublicKey, senderPrivateKey string) (string, error) {
	rawNonce, err := decodeNonce(nonce)
	if err != nil {
		return "", err
	}

	publicKey, err := DecodePublicKey(recipientPublicKey)
	if err != nil {
		return "", err
	}

	privateKey, err := DecodePrivateKey(senderPrivateKey)
	if err != nil {
		return "", err
	}

	sealed := box.Seal(nil, []byte(plaintext), rawNonce, publicKey, privateKey)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// GenerateKeypair creates a fresh box keypair in the textual forms the
// rest of the system uses: a base64 public key and a hex private key.
func GenerateKeypair() (publicKey, privateKey string, err error) {
	rawPublic, rawPrivate, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate keypair: %w", err)
	}
	return base64.StdEncoding.EncodeToString(rawPublic[:]), hex.EncodeToString(rawPrivate[:]), nil
}

// GenerateNonce creates a random 24-byte nonce as base64.
func GenerateNonce() (string, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(nonce[:]), nil
}

// DecodePublicKey decodes a base64 public key into the fixed-size array
// the primitive expects.
func DecodePublicKey(s string) (*[KeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: public key is not valid base64: %v", kerrors.ErrDecodingFailed, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: public key is %d bytes, expected %d", kerrors.ErrDecodingFailed, len(raw), KeySize)
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}

// DecodePrivateKey decodes a hex private key into the fixed-size array
// the primitive expects.
func DecodePrivateKey(s string) (*[KeySize]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: private key is not valid hex: %v", kerrors.ErrDecodingFailed, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: private key is %d bytes, expected %d", kerrors.ErrDecodingFailed, len(raw), KeySize)
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}

func decodeNonce(s string) (*[NonceSize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce is not valid base64: %v", kerrors.ErrDecodingFailed, err)
	}
	if len(raw) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes, expected %d", kerrors.ErrDecodingFailed, len(raw), NonceSize)
	}

	var nonce [NonceSize]byte
	copy(nonce[:], raw)
	return &nonce, nil
}
