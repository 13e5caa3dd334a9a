package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

// Definition is the on-disk shape of a game: rooms, passages and
// objects, authored as JSON or YAML.
type Definition struct {
	Name      string   `json:"name" yaml:"name"`
	StartRoom int      `json:"start_room" yaml:"start_room"`
	Rooms     []Room   `json:"rooms" yaml:"rooms"`
	Objects   []Object `json:"objects" yaml:"objects"`
}

// LoadFile reads and validates a definition file. The format is chosen
// by extension: .json, .yaml or .yml.
func LoadFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}

	var def Definition
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported definition format %q", ext)
	}

	return New(def)
}

// New builds an immutable World from a definition, rejecting malformed
// input up front rather than surfacing corruption during play.
func New(def Definition) (*World, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		Name:      def.Name,
		StartRoom: def.StartRoom,
		rooms:     make(map[int]*Room, len(def.Rooms)),
		objects:   make(map[string]*Object, len(def.Objects)),
	}
	for i := range def.Rooms {
		r := def.Rooms[i]
		// Directions may be authored in any casing or abbreviated;
		// passage lookups compare canonical forms.
		for j := range r.Passages {
			if r.Passages[j].Forced {
				continue
			}
			d, _ := ParseDirection(string(r.Passages[j].Direction))
			r.Passages[j].Direction = d
		}
		w.rooms[r.ID] = &r
	}
	for i := range def.Objects {
		o := def.Objects[i]
		key := FoldName(o.Name)
		w.objects[key] = &o
		w.order = append(w.order, key)
	}
	return w, nil
}

// Validate checks structural integrity of the definition: room identity,
// passage destinations, forced-passage ordering, gating references and
// object placement. All problems are reported together.
func (def *Definition) Validate() error {
	el := errors.NewErrorList()

	if def.Name == "" {
		el.Add(fmt.Errorf("game name is required"))
	}

	ids := make(map[int]bool, len(def.Rooms))
	for _, r := range def.Rooms {
		if r.ID == TerminalRoom {
			el.Add(fmt.Errorf("room id %d is reserved for game-over passages", TerminalRoom))
			continue
		}
		if ids[r.ID] {
			el.Add(fmt.Errorf("duplicate room id %d", r.ID))
		}
		ids[r.ID] = true
	}

	if len(def.Rooms) == 0 {
		el.Add(fmt.Errorf("at least one room is required"))
	} else if !ids[def.StartRoom] {
		el.Add(fmt.Errorf("start room %d does not exist", def.StartRoom))
	}

	names := make(map[string]bool, len(def.Objects))
	for _, o := range def.Objects {
		if o.Name == "" {
			el.Add(fmt.Errorf("object name is required"))
			continue
		}
		key := FoldName(o.Name)
		if names[key] {
			el.Add(fmt.Errorf("duplicate object name %q", o.Name))
		}
		names[key] = true
		if !ids[o.Room] {
			el.Add(fmt.Errorf("object %q placed in unknown room %d", o.Name, o.Room))
		}
	}

	for _, r := range def.Rooms {
		forced := 0
		for i, p := range r.Passages {
			if p.Forced {
				forced++
				if i != 0 {
					el.Add(fmt.Errorf("room %d: forced passage must be first in the list", r.ID))
				}
				if p.Direction != Forced {
					el.Add(fmt.Errorf("room %d: forced passage must use direction %s", r.ID, Forced))
				}
			} else {
				if _, ok := ParseDirection(string(p.Direction)); !ok {
					el.Add(fmt.Errorf("room %d: unknown direction %q", r.ID, p.Direction))
				}
				if p.To == TerminalRoom {
					el.Add(fmt.Errorf("room %d: passage %s: destination %d is only legal on a forced passage", r.ID, p.Direction, TerminalRoom))
				}
			}
			if p.To != TerminalRoom && !ids[p.To] {
				el.Add(fmt.Errorf("room %d: passage %s: unknown destination %d", r.ID, p.Direction, p.To))
			}
			if p.Requires != "" && !names[FoldName(p.Requires)] {
				el.Add(fmt.Errorf("room %d: passage %s: requires unknown object %q", r.ID, p.Direction, p.Requires))
			}
		}
		if forced > 1 {
			el.Add(fmt.Errorf("room %d: at most one forced passage is allowed", r.ID))
		}
	}

	return el.Err()
}
