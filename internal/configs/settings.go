package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// KeydirVariable overrides the keys directory when set.
const KeydirVariable = "TOTARA_KEYDIR"

// Settings locates key material and encrypted documents. It is a plain
// value handed to workflows; nothing below the workflow layer reads
// configuration or the environment on its own.
type Settings struct {
	// Keydir is the directory holding one private-key file per public key.
	Keydir string `toml:"keydir"`

	// SecretsDir is the directory encrypted documents are kept in. An
	// empty value means the current directory.
	SecretsDir string `toml:"secrets_dir"`

	// FilePrefix and FileSuffix compose per-environment document names,
	// e.g. prefix "secrets" and suffix ".ejson" give
	// "secrets.production.ejson" for the production environment.
	FilePrefix string `toml:"file_prefix"`
	FileSuffix string `toml:"file_suffix"`

	// PrivateKeyVariable names the environment variable consulted for a
	// private key before the keydir is searched.
	PrivateKeyVariable string `toml:"private_key_variable"`
}

// DefaultSettings builds settings from defaults plus the given
// environment lookup (typically os.LookupEnv).
func DefaultSettings(lookup func(string) (string, bool)) (Settings, error) {
	settings := Settings{
		FilePrefix:         "secrets",
		FileSuffix:         ".ejson",
		PrivateKeyVariable: "TOTARA_PRIVATE_KEY",
	}

	if dir, ok := lookup(KeydirVariable); ok && dir != "" {
		settings.Keydir = dir
		return settings, nil
	}

	dataDir, err := userDataDir(lookup)
	if err != nil {
		return Settings{}, err
	}
	settings.Keydir = filepath.Join(dataDir, "totara", "keys")
	return settings, nil
}

// DocumentPath composes the path of the document for an environment. An
// empty environment names the bare prefix+suffix file.
func (s Settings) DocumentPath(environment string) string {
	name := s.FilePrefix + s.FileSuffix
	if environment != "" {
		name = s.FilePrefix + "." + environment + s.FileSuffix
	}
	return filepath.Join(s.SecretsDir, name)
}

// userDataDir resolves the XDG data directory through the injected
// lookup, falling back to ~/.local/share.
func userDataDir(lookup func(string) (string, bool)) (string, error) {
	if dir, ok := lookup("XDG_DATA_HOME"); ok && dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share"), nil
}
