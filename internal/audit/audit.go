package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/tokn/internal/configs"
	"github.com/PolarWolf314/tokn/internal/utils"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS user performing the action.
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Profile        string `json:"profile,omitempty"`
	Target         string `json:"target,omitempty"`  // Import name, export path or secret type.
	Backend        string `json:"backend,omitempty"` // Secret backend kind.
	IncludeSecrets bool   `json:"include_secrets,omitempty"`
}

const timestampFormat = "2006-01-02T15:04:05.000000Z"

// Time parses the entry timestamp. Plain RFC3339 is accepted for entries
// written by hand.
func (e Entry) Time() (time.Time, error) {
	t, err := time.Parse(timestampFormat, e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err
}

// Log appends an entry to the audit log. Failures are ignored.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampFormat)
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
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

// LogWithUser returns an entry for op with the user and host filled in.
func LogWithUser(op string) Entry {
	id := utils.CurrentIdentity()
	return Entry{Operation: op, User: id.User, Host: id.Host}
}

// LogPath returns the path to the audit log file, or "" when no data
// directory is configured.
func LogPath() string {
	if configs.ToknSettings == nil {
		return ""
	}
	return configs.ToknSettings.AuditPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
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
