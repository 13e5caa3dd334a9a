package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// MockStore is an in-memory Storage for tests. Sessions are stored as
// snapshots so load/save exercises the same round-trip as the real
// backends.
type MockStore struct {
	mu     sync.RWMutex
	snaps  map[uuid.UUID][]byte
	worlds map[string]*world.World

	PingErr error
	SaveErr error
	LoadErr error
}

var _ Storage = (*MockStore)(nil)

func NewMockStore(worlds ...*world.World) *MockStore {
	m := &MockStore{
		snaps:  make(map[uuid.UUID][]byte),
		worlds: make(map[string]*world.World),
	}
	for _, w := range worlds {
		m.worlds[world.FoldName(w.Name)] = w
	}
	return m
}

func (m *MockStore) Ping(ctx context.Context) error { return m.PingErr }
func (m *MockStore) Close() error                   { return nil }

func (m *MockStore) SaveSession(ctx context.Context, s *session.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := s.Snapshot()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[s.ID] = data
	return nil
}

func (m *MockStore) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.RLock()
	data, ok := m.snaps[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var header struct {
		Game string `json:"game"`
	}
	_ = json.Unmarshal(data, &header)
	w, ok := m.worlds[world.FoldName(header.Game)]
	if !ok {
		return nil, ErrGameNotFound
	}
	return session.Restore(w, data)
}

func (m *MockStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, id)
	return nil
}

func (m *MockStore) ListGames(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.worlds))
	for _, w := range m.worlds {
		names = append(names, w.Name)
	}
	return names, nil
}

func (m *MockStore) GetWorld(ctx context.Context, name string) (*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.worlds[world.FoldName(name)]
	if !ok {
		return nil, ErrGameNotFound
	}
	return w, nil
}
