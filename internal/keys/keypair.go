package keys

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/totara/internal/errors"
)

// WriteKeypair stores a private key in the keys directory under its
// public key's filename. The directory is created if needed. Returns
// ErrKeypairExists when a key file is already present, so an existing
// key is never silently overwritten.
func WriteKeypair(dir, publicKey, privateKey string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create keys directory at %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(publicKey))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", kerrors.ErrKeypairExists, path)
	}

	if err := os.WriteFile(path, []byte(privateKey+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write key file at %s: %w", path, err)
	}
	return path, nil
}
