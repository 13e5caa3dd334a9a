package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Library holds the game definitions loaded from a data directory.
// Worlds are immutable, so one Library is shared by every session.
type Library struct {
	worlds map[string]*world.World // keyed by folded game name
	names  []string                // display names, sorted
}

// NewLibrary loads and validates every definition file in dir. All
// files must be valid; a malformed definition fails the whole load.
func NewLibrary(dir string) (*Library, error) {
	lib := &Library{worlds: make(map[string]*world.World)}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".json", ".yaml", ".yml":
		default:
			return nil
		}

		w, err := world.LoadFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}
		key := world.FoldName(w.Name)
		if _, ok := lib.worlds[key]; ok {
			return fmt.Errorf("duplicate game name %q in %s", w.Name, filepath.Base(path))
		}
		lib.worlds[key] = w
		lib.names = append(lib.names, w.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(lib.names)
	return lib, nil
}

// Names returns the loaded game names, sorted.
func (l *Library) Names() []string {
	return append([]string(nil), l.names...)
}

// Get looks up a world by game name, case-insensitively.
func (l *Library) Get(name string) (*world.World, error) {
	w, ok := l.worlds[world.FoldName(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrGameNotFound)
	}
	return w, nil
}
