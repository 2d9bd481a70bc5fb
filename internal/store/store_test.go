package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	want := doc{Name: "front desk", Count: 3, Tags: []string{"a", "b"}}

	require.NoError(t, Save(path, want))

	got := Load(path, doc{})
	assert.Equal(t, want, got)
}

func TestRoundTrip_Map(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	want := map[string]string{"alice": "YWJj", "bob": "eHl6"}

	require.NoError(t, Save(path, want))

	got := Load(path, map[string]string{})
	assert.Equal(t, want, got)
}

func TestLoad_DefaultOnAbsence(t *testing.T) {
	def := doc{Name: "default"}
	got := Load(filepath.Join(t.TempDir(), "missing.json"), def)
	assert.Equal(t, def, got)
}

func TestLoad_DefaultOnCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	def := doc{Name: "default"}
	got := Load(path, def)
	assert.Equal(t, def, got)
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, Save(path, doc{Name: "first"}))
	require.NoError(t, Save(path, doc{Name: "second"}))

	got := Load(path, doc{})
	assert.Equal(t, "second", got.Name)
}

func TestSave_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "doc.json")
	require.NoError(t, Save(path, doc{Name: "deep"}))

	got := Load(path, doc{})
	assert.Equal(t, "deep", got.Name)
}

func TestSave_HumanReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, Save(path, map[string]string{"key": "value"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "    \"key\": \"value\"")
}
