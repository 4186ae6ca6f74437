package decrypt_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/totara/test/integration/shared"
)

// setupEncryptedDocument generates a keypair in the keydir and leaves an
// encrypted document at the given path. Returns the public key.
func setupEncryptedDocument(t *testing.T, path string) string {
	t.Helper()

	keygenOutput, err := shared.RunCommand(t, "keygen", "--write")
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	publicKey := shared.PublicKeyFromOutput(t, keygenOutput)

	shared.WriteDocument(t, path, fmt.Sprintf(`{
		"_public_key": %q,
		"database_url": "postgres://localhost:5432/mydb",
		"api": {"key": "secret123"}
	}`, publicKey))

	if _, err := shared.RunCommand(t, "encrypt", path); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	return publicKey
}

// TestDecrypt_ToStdout tests that decrypt prints the plaintext document
// without touching the encrypted file.
func TestDecrypt_ToStdout(t *testing.T) {
	tempDir := shared.SetupTestEnvironment(t)

	path := filepath.Join(tempDir, "secrets.dev.ejson")
	publicKey := setupEncryptedDocument(t, path)

	encrypted, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}

	output, err := shared.RunCommand(t, "decrypt", "-e", "dev")
	if err != nil {
		t.Fatalf("Decrypt should not return an error: %v", err)
	}

	if !strings.Contains(output, "postgres://localhost:5432/mydb") {
		t.Errorf("Output should contain the plaintext, got: %s", output)
	}
	if !strings.Contains(output, "secret123") {
		t.Errorf("Output should contain the nested plaintext, got: %s", output)
	}
	if !strings.Contains(output, publicKey) {
		t.Errorf("Output should keep the _public_key, got: %s", output)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to re-read document: %v", err)
	}
	if string(after) != string(encrypted) {
		t.Error("Decrypt to stdout should not modify the encrypted file")
	}
}

// TestDecrypt_OutputFile tests writing the plaintext to a separate file
// with --output.
func TestDecrypt_OutputFile(t *testing.T) {
	tempDir := shared.SetupTestEnvironment(t)

	path := filepath.Join(tempDir, "app.ejson")
	setupEncryptedDocument(t, path)

	outPath := filepath.Join(tempDir, "app.json")
	output, err := shared.RunCommand(t, "decrypt", "-o", outPath, path)
	if err != nil {
		t.Fatalf("Decrypt should not return an error: %v", err)
	}
	if !strings.Contains(output, "Decrypted 2 value(s)") {
		t.Errorf("Output should report 2 values, got: %s", output)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), "secret123") {
		t.Errorf("Output file should contain the plaintext, got: %s", data)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("Failed to stat output file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions on the output file, got: %v", info.Mode().Perm())
	}

	encrypted, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read original document: %v", err)
	}
	if strings.Contains(string(encrypted), "secret123") {
		t.Error("The original document should stay encrypted")
	}
}

// TestDecrypt_PrivateKeyFromEnvironment tests that TOTARA_PRIVATE_KEY
// takes the place of the keydir.
func TestDecrypt_PrivateKeyFromEnvironment(t *testing.T) {
	tempDir := shared.SetupTestEnvironment(t)

	keygenOutput, err := shared.RunCommand(t, "keygen")
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	publicKey := shared.PublicKeyFromOutput(t, keygenOutput)
	privateKey := shared.PrivateKeyFromOutput(t, keygenOutput)

	path := filepath.Join(tempDir, "app.ejson")
	shared.WriteDocument(t, path, fmt.Sprintf(`{"_public_key": %q, "token": "abc123"}`, publicKey))
	if _, err := shared.RunCommand(t, "encrypt", path); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// The key was never written to the keydir, so only the environment
	// variable can supply it.
	t.Setenv("TOTARA_PRIVATE_KEY", privateKey)

	output, err := shared.RunCommand(t, "decrypt", path)
	if err != nil {
		t.Fatalf("Decrypt should not return an error: %v", err)
	}
	if !strings.Contains(output, "abc123") {
		t.Errorf("Output should contain the plaintext, got: %s", output)
	}
}

// TestDecrypt_UnknownKey tests the failure message when no resolver knows
// the document's private key.
func TestDecrypt_UnknownKey(t *testing.T) {
	tempDir := shared.SetupTestEnvironment(t)

	keygenOutput, err := shared.RunCommand(t, "keygen")
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	publicKey := shared.PublicKeyFromOutput(t, keygenOutput)

	path := filepath.Join(tempDir, "app.ejson")
	shared.WriteDocument(t, path, fmt.Sprintf(`{"_public_key": %q, "token": "abc123"}`, publicKey))
	if _, err := shared.RunCommand(t, "encrypt", path); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	output, err := shared.RunCommand(t, "decrypt", path)
	if err != nil {
		t.Fatalf("Command execution should not fail: %v", err)
	}
	if !strings.Contains(output, "Failed to decrypt") {
		t.Errorf("Output should report the failure, got: %s", output)
	}
	if !strings.Contains(output, "failed to resolve private key") {
		t.Errorf("Output should name the resolution failure, got: %s", output)
	}
	if !strings.Contains(output, "Private keys are looked up in:") {
		t.Errorf("Output should hint at the key locations, got: %s", output)
	}
	if strings.Contains(output, "abc123") {
		t.Error("No plaintext should leak on failure")
	}
}
