package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/totara/internal/audit"
	"github.com/PolarWolf314/totara/internal/configs"
	"github.com/PolarWolf314/totara/internal/ejson"
	"github.com/PolarWolf314/totara/internal/keys"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Environment selects the document by name via the configured
	// prefix/suffix. Ignored when FilePath is set.
	Environment string

	// FilePath names the document directly, bypassing path composition.
	FilePath string

	// Settings locates the keys directory and documents.
	Settings configs.Settings

	// Lookup is the environment lookup used for the private-key variable.
	// If nil, the environment resolver is skipped.
	Lookup func(string) (string, bool)
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Document is the decrypted document, re-encoded as JSON.
	Document []byte

	// SourcePath is the document that was decrypted.
	SourcePath string

	// Values is how many encrypted values were replaced with plaintext.
	Values int
}

// Decrypt reads an encrypted document, resolves the private key for its
// _public_key, and returns the document with every encrypted value
// replaced by plaintext.
//
// The private key is resolved from the configured environment variable
// first, then from the keys directory. Returns ErrKeyResolutionFailed
// wrapping ErrKeyNotFound when neither knows the document's key, and the
// core error taxonomy for everything else. On any failure no document is
// returned.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	sourcePath := opts.FilePath
	if sourcePath == "" {
		sourcePath = opts.Settings.DocumentPath(opts.Environment)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read document at %s: %w", sourcePath, err)
	}

	decrypted, err := ejson.DecryptDocument(data, documentResolver(opts.Settings, opts.Lookup))
	if err != nil {
		return nil, err
	}

	result := &DecryptResult{
		Document:   decrypted,
		SourcePath: sourcePath,
		Values:     strings.Count(string(data), ejson.Prefix) - strings.Count(string(decrypted), ejson.Prefix),
	}

	entry := audit.LogWithUser("decrypt")
	entry.Document = sourcePath
	entry.Values = result.Values
	audit.Log(entry)

	return result, nil
}

// documentResolver builds the standard resolver chain: the private-key
// environment variable when a lookup is available, then the keydir.
func documentResolver(settings configs.Settings, lookup func(string) (string, bool)) ejson.KeyResolver {
	var chain keys.ChainResolver
	if lookup != nil {
		chain = append(chain, keys.EnvResolver{
			Lookup:   lookup,
			Variable: settings.PrivateKeyVariable,
		})
	}
	chain = append(chain, keys.DirResolver{Dir: settings.Keydir})
	return chain
}
