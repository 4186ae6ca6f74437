package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/totara/internal/audit"
	"github.com/PolarWolf314/totara/internal/configs"
	"github.com/PolarWolf314/totara/internal/ejson"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Environment selects the document by name via the configured
	// prefix/suffix. Ignored when FilePath is set.
	Environment string

	// FilePath names the document directly, bypassing path composition.
	FilePath string

	// DryRun encrypts without writing the result back.
	DryRun bool

	// Settings locates the documents.
	Settings configs.Settings
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Path is the document that was encrypted in place.
	Path string

	// Values is how many plain string values were sealed.
	Values int

	// DryRun indicates the file was left unmodified.
	DryRun bool
}

// Encrypt seals every eligible plain string value in a document under
// its _public_key and writes the result back in place. Values already in
// token form are untouched, so encrypt is safe to run repeatedly.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	path := opts.FilePath
	if path == "" {
		path = opts.Settings.DocumentPath(opts.Environment)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document at %s: %w", path, err)
	}

	encrypted, err := ejson.EncryptDocument(data)
	if err != nil {
		return nil, err
	}

	result := &EncryptResult{
		Path:   path,
		Values: strings.Count(string(encrypted), ejson.Prefix) - strings.Count(string(data), ejson.Prefix),
		DryRun: opts.DryRun,
	}

	if opts.DryRun {
		return result, nil
	}

	// Keep the original file's permissions where possible.
	mode := os.FileMode(0600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, encrypted, mode); err != nil {
		return nil, fmt.Errorf("failed to write document at %s: %w", path, err)
	}

	entry := audit.LogWithUser("encrypt")
	entry.Document = path
	entry.Values = result.Values
	audit.Log(entry)

	return result, nil
}
