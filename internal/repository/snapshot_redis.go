package repository

import (
    "context"
    "errors"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// RedisSnapshotStore keeps each session's identity under
// <prefix>:identity:<session>. A zero TTL keeps keys until sign-out.
type RedisSnapshotStore struct {
    rdb    *redis.Client
    prefix string
    ttl    time.Duration
}

func NewRedisSnapshotStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisSnapshotStore {
    return &RedisSnapshotStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisSnapshotStore) key(session string) string {
    return s.prefix + ":identity:" + session
}

func (s *RedisSnapshotStore) Save(ctx context.Context, session string, u model.User) error {
    b, err := encodeSnapshot(u)
    if err != nil {
        return err
    }
    return s.rdb.Set(ctx, s.key(session), b, s.ttl).Err()
}

func (s *RedisSnapshotStore) Load(ctx context.Context, session string) (model.User, error) {
    b, err := s.rdb.Get(ctx, s.key(session)).Bytes()
    if errors.Is(err, redis.Nil) {
        return model.User{}, ErrSnapshotMissing
    }
    if err != nil {
        return model.User{}, err
    }
    return decodeSnapshot(b)
}

func (s *RedisSnapshotStore) Clear(ctx context.Context, session string) error {
    return s.rdb.Del(ctx, s.key(session)).Err()
}
