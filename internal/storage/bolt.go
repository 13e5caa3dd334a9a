package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	bbolt "go.etcd.io/bbolt"

	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

var bucketSessions = []byte("sessions")

// BoltStore implements Storage on a single bbolt file, for deployments
// without a Redis. Snapshots are stored as-is under the session id.
type BoltStore struct {
	db     *bbolt.DB
	lib    *Library
	logger *slog.Logger
}

var _ Storage = (*BoltStore)(nil)

// NewBoltStore opens or creates the database file and loads the game
// library from the data directory.
func NewBoltStore(path, dataDir string, logger *slog.Logger) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	lib, err := NewLibrary(dataDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading game library: %w", err)
	}

	return &BoltStore{db: db, lib: lib, logger: logger}, nil
}

func (b *BoltStore) Ping(ctx context.Context) error {
	// bbolt is in-process; the open handle is the health check.
	if b.db == nil {
		return fmt.Errorf("bolt database is not open")
	}
	return nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

func (b *BoltStore) SaveSession(ctx context.Context, s *session.Session) error {
	data, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot session: %w", err)
	}
	err = b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(s.ID.String()), data)
	})
	if err != nil {
		b.logger.Error("Failed to save session", "id", s.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (b *BoltStore) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSessions).Get([]byte(id.String())); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return decodeSession(data, b.lib)
}

func (b *BoltStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Delete([]byte(id.String()))
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (b *BoltStore) ListGames(ctx context.Context) ([]string, error) {
	return b.lib.Names(), nil
}

func (b *BoltStore) GetWorld(ctx context.Context, name string) (*world.World, error) {
	return b.lib.Get(name)
}
