package world

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

// TerminalRoom is the destination id of a forced passage that ends the
// game instead of moving the player.
const TerminalRoom = 0

var ErrRoomNotFound = errors.New("room not found")

// Passage is a directed edge from one room to another. A forced passage
// is traversed automatically on entry; by convention it is the first
// entry in a room's passage list.
type Passage struct {
	Direction      Direction `json:"direction" yaml:"direction"`
	To             int       `json:"to" yaml:"to"`
	Forced         bool      `json:"forced,omitempty" yaml:"forced,omitempty"`
	Requires       string    `json:"requires,omitempty" yaml:"requires,omitempty"`               // object that must be carried
	BlockedMessage string    `json:"blocked_message,omitempty" yaml:"blocked_message,omitempty"` // shown when Requires is not met
}

// Room is a navigable location. Rooms are immutable after load; only
// object locations and visited flags change during play, and those live
// on the session.
type Room struct {
	ID          int       `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Passages    []Passage `json:"passages" yaml:"passages"`
}

// ForcedPassage returns the room's forced passage, if it has one.
func (r *Room) ForcedPassage() (Passage, bool) {
	if len(r.Passages) > 0 && r.Passages[0].Forced {
		return r.Passages[0], true
	}
	return Passage{}, false
}

// PassageTo returns the passage matching the given direction.
func (r *Room) PassageTo(d Direction) (Passage, bool) {
	for _, p := range r.Passages {
		if !p.Forced && p.Direction == d {
			return p, true
		}
	}
	return Passage{}, false
}

// Directions returns the room's legal movement directions in load order.
// The forced sentinel is excluded; it is not a player command.
func (r *Room) Directions() []Direction {
	dirs := make([]Direction, 0, len(r.Passages))
	for _, p := range r.Passages {
		if p.Forced {
			continue
		}
		dirs = append(dirs, p.Direction)
	}
	return dirs
}

// Object is a takeable game object. Identity is the case-folded name;
// the stored casing is preserved for display.
type Object struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Room        int    `json:"room" yaml:"room"` // starting room
}

var folder = cases.Fold()

// FoldName normalizes an object name for case-insensitive matching.
func FoldName(name string) string {
	return folder.String(name)
}

// World is the immutable room graph and object arena for one game,
// built once from a definition file.
type World struct {
	Name      string
	StartRoom int

	rooms   map[int]*Room
	objects map[string]*Object // keyed by folded name
	order   []string           // folded object names in load order
}

// RoomByID looks up a room by its stable id.
func (w *World) RoomByID(id int) (*Room, error) {
	r, ok := w.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	return r, nil
}

// RoomCount returns the number of rooms in the graph.
func (w *World) RoomCount() int {
	return len(w.rooms)
}

// HasRoom reports whether a room id exists in the graph.
func (w *World) HasRoom(id int) bool {
	_, ok := w.rooms[id]
	return ok
}

// Object looks up an object by name, case-insensitively. Absence is not
// an error; callers treat a miss as "you don't see that here".
func (w *World) Object(name string) (*Object, bool) {
	o, ok := w.objects[FoldName(name)]
	return o, ok
}

// Objects returns all objects in load order.
func (w *World) Objects() []*Object {
	objs := make([]*Object, 0, len(w.order))
	for _, key := range w.order {
		objs = append(objs, w.objects[key])
	}
	return objs
}
