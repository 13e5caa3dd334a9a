package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrGameNotFound is returned when no loaded definition matches the
// requested game name.
var ErrGameNotFound = errors.New("game not found")

// Storage is the persistence boundary: session snapshots keyed by id,
// plus the game definitions they restore against. Loading a session
// that does not exist returns (nil, nil); a snapshot that cannot be
// decoded surfaces session.ErrCorruptSnapshot.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	SaveSession(ctx context.Context, s *session.Session) error
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	ListGames(ctx context.Context) ([]string, error)
	GetWorld(ctx context.Context, name string) (*world.World, error)
}

// decodeSession restores a snapshot by first peeking at the game name
// it was taken from, then restoring against that world.
func decodeSession(data []byte, lib *Library) (*session.Session, error) {
	var header struct {
		Game string `json:"game"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrCorruptSnapshot, err)
	}
	w, err := lib.Get(header.Game)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrCorruptSnapshot, err)
	}
	return session.Restore(w, data)
}
