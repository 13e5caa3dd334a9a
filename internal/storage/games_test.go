package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLibrary(t *testing.T) {
	lib, err := NewLibrary("testdata")
	require.NoError(t, err)

	assert.Equal(t, []string{"Harbor", "Island"}, lib.Names())

	w, err := lib.Get("harbor")
	require.NoError(t, err)
	assert.Equal(t, "Harbor", w.Name)
	assert.Equal(t, 2, w.RoomCount())

	_, err = lib.Get("Atlantis")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestNewLibraryRejectsInvalidDefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "Broken", "start_room": 9, "rooms": []}`), 0644))

	_, err := NewLibrary(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestNewLibraryRejectsDuplicateGameNames(t *testing.T) {
	dir := t.TempDir()
	def := `{
		"name": "Twin",
		"start_room": 1,
		"rooms": [{"id": 1, "name": "Only", "description": "x", "passages": []}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(def), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(def), 0644))

	_, err := NewLibrary(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate game name")
}

func TestNewLibraryIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	def := `{
		"name": "Solo",
		"start_room": 1,
		"rooms": [{"id": 1, "name": "Only", "description": "x", "passages": []}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solo.json"), []byte(def), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# notes"), 0644))

	lib, err := NewLibrary(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Solo"}, lib.Names())
}
