package ejson

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/totara/internal/errors"
)

// encrypter seals values for one document. A fresh ephemeral sender
// keypair is generated per run; its public half is embedded in every
// token so the recipient can open the boxes with only their own private
// key.
type encrypter struct {
	recipientPublicKey string
	senderPublicKey    string
	senderPrivateKey   string
}

// EncryptDocument encrypts every eligible plain string value in a JSON
// document under its root _public_key, returning the re-encoded document.
// Values already in token form are left alone, so re-encrypting a
// document only touches strings added since the last run. Keys beginning
// with an underscore are never encrypted; that convention keeps defaults
// and _public_key itself readable.
func EncryptDocument(data []byte) ([]byte, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	if err := EncryptValues(root); err != nil {
		return nil, err
	}

	return encodeDocument(root)
}

// EncryptValues encrypts a parsed document tree in place.
func EncryptValues(root map[string]any) error {
	recipientPublicKey, err := documentPublicKey(root)
	if err != nil {
		return err
	}

	senderPublicKey, senderPrivateKey, err := GenerateKeypair()
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrEncryptionFailed, err)
	}

	enc := &encrypter{
		recipientPublicKey: recipientPublicKey,
		senderPublicKey:    senderPublicKey,
		senderPrivateKey:   senderPrivateKey,
	}
	return enc.encryptMapping(root, "")
}

func (e *encrypter) encryptMapping(m map[string]any, path string) error {
	for _, key := range sortedKeys(m) {
		if strings.HasPrefix(key, "_") {
			continue
		}

		switch value := m[key].(type) {
		case string:
			if IsEncrypted(value) {
				continue
			}
			token, err := e.encryptString(value)
			if err != nil {
				return fmt.Errorf("encrypting %s: %w", joinPath(path, key), err)
			}
			m[key] = token
		case map[string]any:
			if err := e.encryptMapping(value, joinPath(path, key)); err != nil {
				return err
			}
		}
	}

	return nil
}

// encryptString seals one plaintext under a fresh random nonce and wraps
// it in wire form. Only schema version 1 is produced.
func (e *encrypter) encryptString(plaintext string) (string, error) {
	nonce, err := GenerateNonce()
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptionFailed, err)
	}

	ciphertext, err := SealBox(plaintext, nonce, e.recipientPublicKey, e.senderPrivateKey)
	if err != nil {
		return "", err
	}

	token := &Token{
		SchemaVersion: 1,
		PublicKey:     e.senderPublicKey,
		Nonce:         nonce,
		Ciphertext:    ciphertext,
	}
	return token.String(), nil
}
