package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Phase is the interpreter state machine position for a session.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingForced Phase = "awaiting_forced"
	PhaseGameOver       Phase = "game_over"
	PhaseQuit           Phase = "quit"
)

var (
	// ErrObjectNotFound is returned when an object transfer assumes a
	// source location the object is not actually in.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvariantViolation marks object/location inconsistencies. These
	// indicate a defect, not player error, and are fatal.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Session is the complete mutable state of one playthrough: the player's
// room, inventory, object locations and visited flags, layered over an
// immutable world. The world itself is shared and never mutated.
type Session struct {
	ID    uuid.UUID
	World *world.World

	playerRoom  int
	inventory   []string       // folded object names, in pickup order
	objectRooms map[string]int // folded object name -> room id
	visited     map[int]bool
	phase       Phase
}

// New creates a session at the world's start room with objects in their
// starting positions. The start room counts as visited.
func New(w *world.World) *Session {
	s := &Session{
		ID:          uuid.New(),
		World:       w,
		playerRoom:  w.StartRoom,
		objectRooms: make(map[string]int),
		visited:     map[int]bool{w.StartRoom: true},
		phase:       PhaseIdle,
	}
	for _, o := range w.Objects() {
		s.objectRooms[world.FoldName(o.Name)] = o.Room
	}
	return s
}

// CurrentRoom returns the room the player is in.
func (s *Session) CurrentRoom() *world.Room {
	r, err := s.World.RoomByID(s.playerRoom)
	if err != nil {
		// The player's room always resolves; a miss is a defect.
		panic(fmt.Sprintf("session: current room: %v", err))
	}
	return r
}

// SetCurrentRoom moves the player and marks the destination visited.
// Moving the player never moves objects.
func (s *Session) SetCurrentRoom(id int) error {
	if !s.World.HasRoom(id) {
		return fmt.Errorf("room %d: %w", id, world.ErrRoomNotFound)
	}
	s.playerRoom = id
	s.visited[id] = true
	return nil
}

// Visited reports whether the player has entered the room before. It
// governs narration verbosity, not gameplay.
func (s *Session) Visited(id int) bool {
	return s.visited[id]
}

// Phase returns the session's state machine position.
func (s *Session) Phase() Phase {
	return s.phase
}

// SetPhase records a state machine transition.
func (s *Session) SetPhase(p Phase) {
	s.phase = p
}

// Terminal reports whether the session accepts no further commands.
func (s *Session) Terminal() bool {
	return s.phase == PhaseGameOver || s.phase == PhaseQuit
}

// Inventory returns the carried objects in pickup order.
func (s *Session) Inventory() []*world.Object {
	objs := make([]*world.Object, 0, len(s.inventory))
	for _, key := range s.inventory {
		if o, ok := s.World.Object(key); ok {
			objs = append(objs, o)
		}
	}
	return objs
}

// Carrying reports whether the named object is in the inventory.
func (s *Session) Carrying(name string) bool {
	key := world.FoldName(name)
	for _, have := range s.inventory {
		if have == key {
			return true
		}
	}
	return false
}

// ObjectsInRoom returns the objects currently present in a room, in
// world load order.
func (s *Session) ObjectsInRoom(roomID int) []*world.Object {
	var objs []*world.Object
	for _, o := range s.World.Objects() {
		if room, ok := s.objectRooms[world.FoldName(o.Name)]; ok && room == roomID {
			objs = append(objs, o)
		}
	}
	return objs
}

// FindObjectInRoom matches an object by name, case-insensitively, among
// the contents of a room. Absence is not an error.
func (s *Session) FindObjectInRoom(name string, roomID int) (*world.Object, bool) {
	key := world.FoldName(name)
	room, here := s.objectRooms[key]
	if !here || room != roomID {
		return nil, false
	}
	o, ok := s.World.Object(key)
	return o, ok
}

// TakeObject moves an object from the player's current room into the
// inventory. ErrObjectNotFound if it is not in the room.
func (s *Session) TakeObject(name string) (*world.Object, error) {
	o, ok := s.FindObjectInRoom(name, s.playerRoom)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrObjectNotFound)
	}
	key := world.FoldName(o.Name)
	delete(s.objectRooms, key)
	s.inventory = append(s.inventory, key)
	return o, nil
}

// DropObject moves a carried object into the player's current room.
// ErrObjectNotFound if it is not in the inventory.
func (s *Session) DropObject(name string) (*world.Object, error) {
	key := world.FoldName(name)
	for i, have := range s.inventory {
		if have != key {
			continue
		}
		s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
		s.objectRooms[key] = s.playerRoom
		o, ok := s.World.Object(key)
		if !ok {
			return nil, fmt.Errorf("%q carried but not defined: %w", name, ErrInvariantViolation)
		}
		return o, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrObjectNotFound)
}

// CheckInvariants verifies that the player's room resolves, and that
// every object is in exactly one place that resolves. Failures are
// programming defects, not player errors.
func (s *Session) CheckInvariants() error {
	if !s.World.HasRoom(s.playerRoom) {
		return fmt.Errorf("player in unknown room %d: %w", s.playerRoom, ErrInvariantViolation)
	}
	carried := make(map[string]bool, len(s.inventory))
	for _, key := range s.inventory {
		if carried[key] {
			return fmt.Errorf("object %q carried twice: %w", key, ErrInvariantViolation)
		}
		carried[key] = true
	}
	for _, o := range s.World.Objects() {
		key := world.FoldName(o.Name)
		room, inRoom := s.objectRooms[key]
		switch {
		case inRoom && carried[key]:
			return fmt.Errorf("object %q in room %d and inventory: %w", o.Name, room, ErrInvariantViolation)
		case !inRoom && !carried[key]:
			return fmt.Errorf("object %q is nowhere: %w", o.Name, ErrInvariantViolation)
		case inRoom && !s.World.HasRoom(room):
			return fmt.Errorf("object %q in unknown room %d: %w", o.Name, room, ErrInvariantViolation)
		}
	}
	for key := range s.objectRooms {
		if _, ok := s.World.Object(key); !ok {
			return fmt.Errorf("unknown object %q has a location: %w", key, ErrInvariantViolation)
		}
	}
	for id := range s.visited {
		if !s.World.HasRoom(id) {
			return fmt.Errorf("visited unknown room %d: %w", id, ErrInvariantViolation)
		}
	}
	return nil
}
