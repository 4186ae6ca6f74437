package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/totara/internal/configs"
	"github.com/PolarWolf314/totara/internal/ejson"
	kerrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/keys"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
}

// testSettings builds settings rooted in a temp directory and redirects
// the user config dir so audit entries stay inside the sandbox.
func testSettings(t *testing.T) configs.Settings {
	t.Helper()

	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))

	return configs.Settings{
		Keydir:             filepath.Join(tmp, "keys"),
		SecretsDir:         tmp,
		FilePrefix:         "secrets",
		FileSuffix:         ".ejson",
		PrivateKeyVariable: "TOTARA_PRIVATE_KEY",
	}
}

func writeDocument(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
}

func TestKeygen_Write(t *testing.T) {
	settings := testSettings(t)

	result, err := Keygen(context.Background(), KeygenOptions{Settings: settings, Write: true})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(result.PublicKey) != 44 {
		t.Errorf("Expected a 44-character public key, got: %q", result.PublicKey)
	}
	if result.PrivateKey != "" {
		t.Error("Expected the private key withheld when written to disk")
	}
	if result.KeyPath == "" {
		t.Fatal("Expected a key path")
	}

	privateKey, err := keys.DirResolver{Dir: settings.Keydir}.Resolve(result.PublicKey)
	if err != nil {
		t.Fatalf("Expected the key to resolve from the keydir, got: %v", err)
	}
	if len(privateKey) != 64 {
		t.Errorf("Expected a 64-character hex private key, got: %q", privateKey)
	}
}

func TestKeygen_NoWrite(t *testing.T) {
	settings := testSettings(t)

	result, err := Keygen(context.Background(), KeygenOptions{Settings: settings})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.PrivateKey == "" {
		t.Error("Expected the private key returned when not written")
	}
	if result.KeyPath != "" {
		t.Errorf("Expected no key path, got: %q", result.KeyPath)
	}
	if _, err := os.Stat(settings.Keydir); !os.IsNotExist(err) {
		t.Error("Expected the keydir untouched without --write")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	settings := testSettings(t)

	keypair, err := Keygen(context.Background(), KeygenOptions{Settings: settings, Write: true})
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}

	path := settings.DocumentPath("test")
	writeDocument(t, path, fmt.Sprintf(`{
		"_public_key": %q,
		"password": "hunter2",
		"nested": {"token": "abc123"}
	}`, keypair.PublicKey))

	encrypted, err := Encrypt(context.Background(), EncryptOptions{Environment: "test", Settings: settings})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if encrypted.Values != 2 {
		t.Errorf("Expected 2 values sealed, got: %d", encrypted.Values)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if strings.Contains(string(onDisk), "hunter2") {
		t.Error("Expected no plaintext left in the encrypted document")
	}

	decrypted, err := Decrypt(context.Background(), DecryptOptions{
		Environment: "test",
		Settings:    settings,
		Lookup:      lookupFrom(nil),
	})
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decrypted.Values != 2 {
		t.Errorf("Expected 2 values decrypted, got: %d", decrypted.Values)
	}

	var tree map[string]any
	if err := json.Unmarshal(decrypted.Document, &tree); err != nil {
		t.Fatalf("Decrypted document is not valid JSON: %v", err)
	}
	if tree["password"] != "hunter2" {
		t.Errorf("Expected round-trip plaintext, got: %v", tree["password"])
	}

	// The encrypted file on disk stays encrypted; decrypt never writes back.
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to re-read document: %v", err)
	}
	if string(after) != string(onDisk) {
		t.Error("Expected decrypt to leave the document file unmodified")
	}
}

func TestDecrypt_PrivateKeyFromEnvironment(t *testing.T) {
	settings := testSettings(t)

	publicKey, privateKey, err := ejson.GenerateKeypair()
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}

	path := filepath.Join(settings.SecretsDir, "direct.ejson")
	writeDocument(t, path, fmt.Sprintf(`{"_public_key": %q, "secret": "plain"}`, publicKey))

	if _, err := Encrypt(context.Background(), EncryptOptions{FilePath: path, Settings: settings}); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// No keydir entry exists; the environment variable must carry the key.
	result, err := Decrypt(context.Background(), DecryptOptions{
		FilePath: path,
		Settings: settings,
		Lookup:   lookupFrom(map[string]string{"TOTARA_PRIVATE_KEY": privateKey}),
	})
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !strings.Contains(string(result.Document), `"plain"`) {
		t.Errorf("Expected plaintext in the result, got: %s", result.Document)
	}
}

func TestDecrypt_UnknownKey(t *testing.T) {
	settings := testSettings(t)

	publicKey, _, err := ejson.GenerateKeypair()
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}

	path := filepath.Join(settings.SecretsDir, "orphan.ejson")
	writeDocument(t, path, fmt.Sprintf(`{"_public_key": %q}`, publicKey))

	_, err = Decrypt(context.Background(), DecryptOptions{
		FilePath: path,
		Settings: settings,
		Lookup:   lookupFrom(nil),
	})
	if !errors.Is(err, kerrors.ErrKeyResolutionFailed) {
		t.Errorf("Expected ErrKeyResolutionFailed, got: %v", err)
	}
}

func TestDecrypt_MissingDocument(t *testing.T) {
	settings := testSettings(t)

	_, err := Decrypt(context.Background(), DecryptOptions{
		Environment: "nowhere",
		Settings:    settings,
		Lookup:      lookupFrom(nil),
	})
	if err == nil {
		t.Fatal("Expected an error for a missing document")
	}
	if !strings.Contains(err.Error(), settings.DocumentPath("nowhere")) {
		t.Errorf("Expected the composed path in the error, got: %v", err)
	}
}

func TestEncrypt_DryRun(t *testing.T) {
	settings := testSettings(t)

	publicKey, _, err := ejson.GenerateKeypair()
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}

	path := filepath.Join(settings.SecretsDir, "dry.ejson")
	original := fmt.Sprintf(`{"_public_key": %q, "secret": "plain"}`, publicKey)
	writeDocument(t, path, original)

	result, err := Encrypt(context.Background(), EncryptOptions{FilePath: path, DryRun: true, Settings: settings})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !result.DryRun {
		t.Error("Expected a dry-run result")
	}
	if result.Values != 1 {
		t.Errorf("Expected 1 value counted, got: %d", result.Values)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if string(onDisk) != original {
		t.Error("Expected the document untouched by a dry run")
	}
}
