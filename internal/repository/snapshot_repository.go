package repository

import (
    "context"
    "encoding/json"
    "fmt"
    "sync"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// SnapshotStore persists the current identity of a session as a text
// payload so it can be restored after a restart.
type SnapshotStore interface {
    Save(ctx context.Context, session string, u model.User) error
    Load(ctx context.Context, session string) (model.User, error)
    Clear(ctx context.Context, session string) error
}

// MemorySnapshotStore keeps snapshots in process. It is the default
// backend and the one used by tests.
type MemorySnapshotStore struct {
    mu   sync.RWMutex
    data map[string][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
    return &MemorySnapshotStore{data: map[string][]byte{}}
}

func (s *MemorySnapshotStore) Save(ctx context.Context, session string, u model.User) error {
    b, err := encodeSnapshot(u)
    if err != nil {
        return err
    }
    s.mu.Lock()
    s.data[session] = b
    s.mu.Unlock()
    return nil
}

func (s *MemorySnapshotStore) Load(ctx context.Context, session string) (model.User, error) {
    s.mu.RLock()
    b, ok := s.data[session]
    s.mu.RUnlock()
    if !ok {
        return model.User{}, ErrSnapshotMissing
    }
    return decodeSnapshot(b)
}

func (s *MemorySnapshotStore) Clear(ctx context.Context, session string) error {
    s.mu.Lock()
    delete(s.data, session)
    s.mu.Unlock()
    return nil
}

// Len reports how many sessions have a saved snapshot.
func (s *MemorySnapshotStore) Len() int {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return len(s.data)
}

func encodeSnapshot(u model.User) ([]byte, error) {
    b, err := json.Marshal(u)
    if err != nil {
        return nil, fmt.Errorf("encode snapshot: %w", err)
    }
    return b, nil
}

func decodeSnapshot(b []byte) (model.User, error) {
    var u model.User
    if err := json.Unmarshal(b, &u); err != nil {
        return model.User{}, fmt.Errorf("decode snapshot: %w", err)
    }
    if u.ID == "" {
        return model.User{}, ErrSnapshotMissing
    }
    return u, nil
}
