package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrCorruptSnapshot is returned when a snapshot cannot be decoded into
// a structurally valid session. Callers may recover by starting fresh.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// snapshot is the wire form of a session. The world topology is not
// re-derived on restore; only the mutable state is captured, keyed to
// the game it belongs to.
type snapshot struct {
	ID          uuid.UUID      `json:"id"`
	Game        string         `json:"game"`
	PlayerRoom  int            `json:"player_room"`
	Inventory   []string       `json:"inventory"`
	ObjectRooms map[string]int `json:"object_rooms"`
	Visited     []int          `json:"visited"`
	Phase       Phase          `json:"phase"`
}

// Snapshot encodes the full mutable state of the session. Restoring the
// result is behaviorally indistinguishable from uninterrupted play.
func (s *Session) Snapshot() ([]byte, error) {
	snap := snapshot{
		ID:          s.ID,
		Game:        s.World.Name,
		PlayerRoom:  s.playerRoom,
		Inventory:   append([]string(nil), s.inventory...),
		ObjectRooms: make(map[string]int, len(s.objectRooms)),
		Phase:       s.phase,
	}
	for key, room := range s.objectRooms {
		snap.ObjectRooms[key] = room
	}
	for id := range s.visited {
		snap.Visited = append(snap.Visited, id)
	}
	// Identical state encodes to identical bytes.
	sort.Ints(snap.Visited)
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Restore decodes a snapshot against the world it was taken from. The
// restored session passes the same invariant checks as a fresh load;
// anything structurally invalid fails with ErrCorruptSnapshot.
func Restore(w *world.World, data []byte) (*Session, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Game != w.Name {
		return nil, fmt.Errorf("%w: snapshot is for game %q, not %q", ErrCorruptSnapshot, snap.Game, w.Name)
	}
	if snap.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing session id", ErrCorruptSnapshot)
	}

	s := &Session{
		ID:          snap.ID,
		World:       w,
		playerRoom:  snap.PlayerRoom,
		inventory:   append([]string(nil), snap.Inventory...),
		objectRooms: make(map[string]int, len(snap.ObjectRooms)),
		visited:     make(map[int]bool, len(snap.Visited)),
		phase:       snap.Phase,
	}
	for key, room := range snap.ObjectRooms {
		s.objectRooms[key] = room
	}
	for _, id := range snap.Visited {
		s.visited[id] = true
	}
	switch s.phase {
	case PhaseIdle, PhaseAwaitingForced, PhaseGameOver, PhaseQuit:
	case "":
		s.phase = PhaseIdle
	default:
		return nil, fmt.Errorf("%w: unknown phase %q", ErrCorruptSnapshot, s.phase)
	}

	if err := s.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return s, nil
}
