package audit

import (
	"testing"
)

func TestParseEntries(t *testing.T) {
	data := []byte(`{"ts":"2026-01-02T03:04:05.000000Z","uuid":"u1","op":"keygen","public_key":"pk="}
{"ts":"2026-01-02T03:05:06.000000Z","uuid":"u1","op":"decrypt","document":"secrets.ejson","values":3}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	if entries[0].Operation != "keygen" || entries[0].PublicKey != "pk=" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[1].Operation != "decrypt" || entries[1].Document != "secrets.ejson" || entries[1].Values != 3 {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"op":"encrypt"}
this line is not json
{"op":"decrypt"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected malformed line skipped, got %d entries", len(entries))
	}
	if entries[0].Operation != "encrypt" || entries[1].Operation != "decrypt" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil, got: %v", entries)
	}
}

func TestParseEntries_NoTrailingNewline(t *testing.T) {
	entries, err := ParseEntries([]byte(`{"op":"keygen"}`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != "keygen" {
		t.Errorf("Expected the final unterminated line parsed, got: %+v", entries)
	}
}
