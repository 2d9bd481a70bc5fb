// Package audit keeps the append-only action log. The log is independent of
// the ledger collections; callers record entries after administrative
// actions.
package audit

import (
	"fmt"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/store"
)

// Entry is one row in the audit document.
type Entry struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Logger holds the in-memory log and its backing document.
type Logger struct {
	path    string
	entries []Entry
}

// New loads the audit log at path, starting empty if the document is missing
// or unreadable.
func New(path string) *Logger {
	return &Logger{
		path:    path,
		entries: store.Load(path, []Entry{}),
	}
}

// Record appends a timestamped entry and immediately persists the whole
// sequence. Last full overwrite wins; this process is the only writer.
func (l *Logger) Record(action string) error {
	l.entries = append(l.entries, Entry{
		Action:    action,
		Timestamp: model.Now(),
	})
	if err := store.Save(l.path, l.entries); err != nil {
		return fmt.Errorf("saving audit log: %w", err)
	}
	return nil
}

// Entries returns the log oldest-first.
func (l *Logger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
