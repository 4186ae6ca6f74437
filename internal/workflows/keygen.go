package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/totara/internal/audit"
	"github.com/PolarWolf314/totara/internal/configs"
	"github.com/PolarWolf314/totara/internal/ejson"
	"github.com/PolarWolf314/totara/internal/keys"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Settings locates the keys directory.
	Settings configs.Settings

	// Write stores the private key in the keys directory. When false the
	// keypair is only returned, for piping into another secret store.
	Write bool
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	// PublicKey is the base64 public key to put in documents.
	PublicKey string

	// PrivateKey is the hex private key. Populated only when the key was
	// not written to disk.
	PrivateKey string

	// KeyPath is the key file location when Write was set.
	KeyPath string
}

// Keygen generates a fresh keypair and, when requested, stores the
// private key in the keys directory under the public key's name.
func Keygen(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	publicKey, privateKey, err := ejson.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}

	result := &KeygenResult{PublicKey: publicKey}

	if opts.Write {
		path, err := keys.WriteKeypair(opts.Settings.Keydir, publicKey, privateKey)
		if err != nil {
			return nil, err
		}
		result.KeyPath = path
	} else {
		result.PrivateKey = privateKey
	}

	entry := audit.LogWithUser("keygen")
	entry.PublicKey = publicKey
	audit.Log(entry)

	return result, nil
}
