package ejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/totara/internal/errors"
)

// PublicKeyField is the mandatory root field naming the public key a
// document was encrypted for.
const PublicKeyField = "_public_key"

// KeyResolver supplies the private key matching a document's public key.
// Implementations may consult the environment, a keys directory on disk,
// or any other secret store. A resolver is invoked exactly once per
// document, before traversal begins; if it needs cancellation it is
// responsible for honoring it itself.
type KeyResolver interface {
	Resolve(publicKey string) (privateKey string, err error)
}

// ResolverFunc adapts a plain function to a KeyResolver.
type ResolverFunc func(publicKey string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(publicKey string) (string, error) {
	return f(publicKey)
}

// DecryptDocument decrypts every encrypted string value in a JSON
// document and returns the document re-encoded with plaintext in place
// of each token. Non-encrypted values pass through untouched, so running
// it over an already-decrypted document changes nothing.
//
// Returns ErrInvalidDocument if the data is not a JSON object,
// ErrMissingPublicKey if the root lacks _public_key (the resolver is
// never called in that case), and ErrKeyResolutionFailed wrapping the
// resolver's error if the private key cannot be obtained. Token and
// decryption failures abort the whole operation with the offending key
// path; a partially decrypted document is never returned.
func DecryptDocument(data []byte, resolver KeyResolver) ([]byte, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	if err := DecryptValues(root, resolver); err != nil {
		return nil, err
	}

	return encodeDocument(root)
}

// DecryptValues decrypts a parsed document tree in place. The tree must
// be exclusively owned by the caller for the duration of the call.
func DecryptValues(root map[string]any, resolver KeyResolver) error {
	publicKey, err := documentPublicKey(root)
	if err != nil {
		return err
	}

	privateKey, err := resolver.Resolve(publicKey)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeyResolutionFailed, err)
	}

	return decryptMapping(root, privateKey, "")
}

// decryptMapping walks one mapping level in sorted key order. Underscore
// defaults are applied for the level first, so an aliased value is then
// visited under its own name and decrypted if it is a token. Sequences
// and non-string scalars are left untouched.
func decryptMapping(m map[string]any, privateKey, path string) error {
	applyDefaults(m)

	for _, key := range sortedKeys(m) {
		// Underscore-keyed values are defaults and documentation; they
		// pass through verbatim, never decrypted or recursed into.
		if strings.HasPrefix(key, "_") {
			continue
		}

		switch value := m[key].(type) {
		case string:
			if !IsEncrypted(value) {
				continue
			}
			plaintext, err := decryptString(value, privateKey)
			if err != nil {
				return fmt.Errorf("decrypting %s: %w", joinPath(path, key), err)
			}
			m[key] = plaintext
		case map[string]any:
			if err := decryptMapping(value, privateKey, joinPath(path, key)); err != nil {
				return err
			}
		}
	}

	return nil
}

// decryptString parses one token and opens its box with the resolved
// private key. The token's own embedded public key and nonce are supplied
// to the primitive as-is; they are not cross-checked against the
// document's _public_key.
func decryptString(value, privateKey string) (string, error) {
	token, err := ParseToken(value)
	if err != nil {
		return "", err
	}
	return OpenBox(token.Ciphertext, token.Nonce, token.PublicKey, privateKey)
}

// applyDefaults copies each underscore-prefixed value to the sibling key
// without the underscore when that sibling is absent. Presence of the key
// decides, not truthiness: an existing null or empty value is never
// overwritten. The copy itself is verbatim; if it is a token it is
// decrypted when the walk visits it under the alias name.
func applyDefaults(m map[string]any) {
	for _, key := range sortedKeys(m) {
		if !strings.HasPrefix(key, "_") || len(key) == 1 {
			continue
		}
		alias := key[1:]
		if _, present := m[alias]; !present {
			m[alias] = m[key]
		}
	}
}

func documentPublicKey(root map[string]any) (string, error) {
	value, ok := root[PublicKeyField]
	if !ok {
		return "", kerrors.ErrMissingPublicKey
	}
	publicKey, ok := value.(string)
	if !ok || publicKey == "" {
		return "", kerrors.ErrMissingPublicKey
	}
	return publicKey, nil
}

// parseDocument decodes JSON with number fidelity preserved, so decimal
// literals survive the decrypt round trip unchanged.
func parseDocument(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidDocument, err)
	}

	root, ok := value.(map[string]any)
	if !ok {
		return nil, kerrors.ErrInvalidDocument
	}
	return root, nil
}

func encodeDocument(root map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
