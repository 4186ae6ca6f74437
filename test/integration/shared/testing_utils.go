// Package shared contains testing utilities shared between integration
// tests. This file provides common functions for sandboxing the
// environment, capturing output, and running commands.
package shared

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/totara/cmd"
)

// SetupTestEnvironment sandboxes a test. Config, keys, and documents all
// live under a fresh temp directory, and the working directory points at
// it so default document paths resolve there. Returns the temp directory.
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tempDir, "data"))
	t.Setenv("TOTARA_KEYDIR", filepath.Join(tempDir, "keys"))
	// A private key in the host environment must never leak into a test.
	t.Setenv("TOTARA_PRIVATE_KEY", "")

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})

	return tempDir
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// RunCommand resets command state and executes one totara command,
// returning everything it printed.
func RunCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd.ResetGlobalState()
	return CaptureOutput(func() error {
		return cmd.ExecuteWithArgs(args...)
	})
}

// PublicKeyFromOutput extracts the public key from keygen output.
func PublicKeyFromOutput(t *testing.T, output string) string {
	t.Helper()
	return keygenField(t, output, "Public key:")
}

// PrivateKeyFromOutput extracts the private key from keygen output. Only
// present when the key was not written to disk.
func PrivateKeyFromOutput(t *testing.T, output string) string {
	t.Helper()
	return keygenField(t, output, "Private key:")
}

func keygenField(t *testing.T, output, label string) string {
	t.Helper()

	for _, line := range strings.Split(output, "\n") {
		rest, found := strings.CutPrefix(strings.TrimSpace(line), label)
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			t.Fatalf("Keygen output line %q carries no value", line)
		}
		return fields[0]
	}

	t.Fatalf("Keygen output is missing %q, got: %s", label, output)
	return ""
}

// WriteDocument writes a document file into the sandbox.
func WriteDocument(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
}
