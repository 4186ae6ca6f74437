package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/totara/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds, UTC.
	UserUUID  string `json:"uuid"` // UUID of the user performing the action.
	Operation string `json:"op"`   // keygen, encrypt, or decrypt.

	// Optional fields depending on operation.
	Document  string `json:"document,omitempty"`   // Document path for encrypt/decrypt.
	PublicKey string `json:"public_key,omitempty"` // Document or generated public key.
	Values    int    `json:"values,omitempty"`     // Values touched by encrypt/decrypt.
}

// Log appends an entry to the audit log. If logging fails it returns
// silently; an operation should never fail because its audit entry
// could not be written.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	path := LogPath()
	if path == "" {
		return
	}

	// #nosec G306 -- the audit log holds no secret material.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser creates an entry with the user's UUID pre-populated from
// the config file.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}

	config, err := configs.LoadConfig(os.LookupEnv)
	if err != nil {
		return entry
	}

	entry.UserUUID = config.User.UUID
	return entry
}

// LogPath returns the path of the audit log, or empty when the config
// directory cannot be determined.
func LogPath() string {
	configPath, err := configs.ConfigPath()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(configPath), "audit.jsonl")
}

// ReadEntries reads all entries from the audit log. A missing log is an
// empty history, not an error.
func ReadEntries() ([]Entry, error) {
	path := LogPath()
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries. Malformed
// lines are skipped so a partial write never poisons the whole log.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
