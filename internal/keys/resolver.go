package keys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/totara/internal/ejson"
	kerrors "github.com/PolarWolf314/totara/internal/errors"
)

// DefaultPrivateKeyVariable is the environment variable EnvResolver
// consults when none is configured.
const DefaultPrivateKeyVariable = "TOTARA_PRIVATE_KEY"

// EnvResolver resolves the private key from an environment-style lookup.
// The lookup function is injected so the resolver itself never touches
// ambient process state; callers pass os.LookupEnv or a test map.
type EnvResolver struct {
	// Lookup returns the value for a variable name and whether it is set.
	Lookup func(name string) (string, bool)

	// Variable is the variable holding the hex private key. Empty means
	// DefaultPrivateKeyVariable.
	Variable string
}

// Resolve returns the private key from the configured variable. The
// public key is not consulted; an environment can only hold one key, and
// whether it matches the document is decided by the decryption itself.
func (r EnvResolver) Resolve(publicKey string) (string, error) {
	variable := r.Variable
	if variable == "" {
		variable = DefaultPrivateKeyVariable
	}

	value, ok := r.Lookup(variable)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s is not set", kerrors.ErrKeyNotFound, variable)
	}
	return strings.TrimSpace(value), nil
}

// DirResolver resolves private keys from a keys directory: one file per
// public key, named after the key, containing the hex private key.
type DirResolver struct {
	// Dir is the keys directory path.
	Dir string
}

// Resolve reads the key file matching the public key. Surrounding
// whitespace in the file content is trimmed.
func (r DirResolver) Resolve(publicKey string) (string, error) {
	path := filepath.Join(r.Dir, Filename(publicKey))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no key file at %s", kerrors.ErrKeyNotFound, path)
		}
		return "", fmt.Errorf("failed to read key file at %s: %w", path, err)
	}

	privateKey := strings.TrimSpace(string(data))
	if privateKey == "" {
		return "", fmt.Errorf("%w: key file at %s is empty", kerrors.ErrKeyNotFound, path)
	}
	return privateKey, nil
}

// ChainResolver tries each resolver in order and returns the first
// private key found. Only when every resolver fails does it fail, with
// the last error.
type ChainResolver []ejson.KeyResolver

// Resolve implements ejson.KeyResolver.
func (c ChainResolver) Resolve(publicKey string) (string, error) {
	if len(c) == 0 {
		return "", kerrors.ErrKeyNotFound
	}

	var lastErr error
	for _, resolver := range c {
		privateKey, err := resolver.Resolve(publicKey)
		if err == nil {
			return privateKey, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// Filename maps a public key to its keys-directory filename. Standard
// base64 can contain '+' and '/', which are unusable in a single path
// segment, so those two characters are stored in their URL-safe forms.
func Filename(publicKey string) string {
	replaced := strings.ReplaceAll(publicKey, "+", "-")
	return strings.ReplaceAll(replaced, "/", "_")
}
