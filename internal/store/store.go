// Package store persists named JSON documents on local disk. A document that
// is missing or unparseable reads back as the caller's default; read problems
// are never surfaced as errors.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// indent matches the 4-space formatting of existing documents.
const indent = "    "

// Load returns the parsed document at path, or def if the file does not
// exist or does not parse.
func Load[T any](path string, def T) T {
	data, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def
	}
	return v
}

// Save serializes v as indented JSON and overwrites path in full, creating
// parent directories as needed. The write goes through a temp file in the
// same directory and a rename, so a crash mid-write cannot leave a truncated
// document behind.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
