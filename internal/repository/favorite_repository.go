package repository

import (
    "context"
    "sync"

    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// FavoriteSet is the persistence backend for per-user favorite ids.
type FavoriteSet interface {
    Add(ctx context.Context, userID, tutorID string) error
    Remove(ctx context.Context, userID, tutorID string) error
    Has(ctx context.Context, userID, tutorID string) (bool, error)
    Members(ctx context.Context, userID string) ([]string, error)
}

// FavoriteRepo tracks which tutors each viewer marked as favorite.
type FavoriteRepo struct {
    set    FavoriteSet
    tutors *TutorRepo
    mu     sync.Mutex // serializes toggles so check-then-write is atomic
}

func NewFavoriteRepo(set FavoriteSet, tutors *TutorRepo) *FavoriteRepo {
    return &FavoriteRepo{set: set, tutors: tutors}
}

// Toggle adds tutorID when absent and removes it when present. It returns
// whether the tutor is a favorite afterwards.
func (r *FavoriteRepo) Toggle(ctx context.Context, userID, tutorID string) (bool, error) {
    if userID == "" {
        return false, ErrUnauthorized
    }
    if !r.tutors.Exists(tutorID) {
        return false, ErrNotFound
    }
    r.mu.Lock()
    defer r.mu.Unlock()
    has, err := r.set.Has(ctx, userID, tutorID)
    if err != nil {
        return false, err
    }
    if has {
        return false, r.set.Remove(ctx, userID, tutorID)
    }
    return true, r.set.Add(ctx, userID, tutorID)
}

// IDs returns the raw favorite ids of userID.
func (r *FavoriteRepo) IDs(ctx context.Context, userID string) ([]string, error) {
    return r.set.Members(ctx, userID)
}

// ListTutors returns the favorite tutors of userID in catalog order.
func (r *FavoriteRepo) ListTutors(ctx context.Context, userID string) ([]model.Tutor, error) {
    ids, err := r.set.Members(ctx, userID)
    if err != nil {
        return nil, err
    }
    want := make(map[string]bool, len(ids))
    for _, id := range ids {
        want[id] = true
    }
    out := []model.Tutor{}
    for _, t := range r.tutors.List() {
        if want[t.ID] {
            out = append(out, t)
        }
    }
    return out, nil
}

// MemoryFavoriteSet keeps favorite sets in process.
type MemoryFavoriteSet struct {
    mu   sync.RWMutex
    sets map[string]map[string]struct{}
}

func NewMemoryFavoriteSet() *MemoryFavoriteSet {
    return &MemoryFavoriteSet{sets: map[string]map[string]struct{}{}}
}

func (s *MemoryFavoriteSet) Add(ctx context.Context, userID, tutorID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    set, ok := s.sets[userID]
    if !ok {
        set = map[string]struct{}{}
        s.sets[userID] = set
    }
    set[tutorID] = struct{}{}
    return nil
}

func (s *MemoryFavoriteSet) Remove(ctx context.Context, userID, tutorID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.sets[userID], tutorID)
    return nil
}

func (s *MemoryFavoriteSet) Has(ctx context.Context, userID, tutorID string) (bool, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    _, ok := s.sets[userID][tutorID]
    return ok, nil
}

func (s *MemoryFavoriteSet) Members(ctx context.Context, userID string) ([]string, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]string, 0, len(s.sets[userID]))
    for id := range s.sets[userID] {
        out = append(out, id)
    }
    return out, nil
}

// RedisFavoriteSet stores each user's favorites in the set
// <prefix>:favorites:<user>.
type RedisFavoriteSet struct {
    rdb    *redis.Client
    prefix string
}

func NewRedisFavoriteSet(rdb *redis.Client, prefix string) *RedisFavoriteSet {
    return &RedisFavoriteSet{rdb: rdb, prefix: prefix}
}

func (s *RedisFavoriteSet) key(userID string) string { return s.prefix + ":favorites:" + userID }

func (s *RedisFavoriteSet) Add(ctx context.Context, userID, tutorID string) error {
    return s.rdb.SAdd(ctx, s.key(userID), tutorID).Err()
}

func (s *RedisFavoriteSet) Remove(ctx context.Context, userID, tutorID string) error {
    return s.rdb.SRem(ctx, s.key(userID), tutorID).Err()
}

func (s *RedisFavoriteSet) Has(ctx context.Context, userID, tutorID string) (bool, error) {
    return s.rdb.SIsMember(ctx, s.key(userID), tutorID).Result()
}

func (s *RedisFavoriteSet) Members(ctx context.Context, userID string) ([]string, error) {
    return s.rdb.SMembers(ctx, s.key(userID)).Result()
}
