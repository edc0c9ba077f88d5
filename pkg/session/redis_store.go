package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "hacauth:session:"
	redisIndexKey  = "hacauth:sessions"
)

// RedisStore persists sessions in redis so a fleet of workers (CI agents,
// parallel deploy jobs) can share one negotiated login instead of each
// performing its own. A sorted set scored by LastUsedAt backs the
// most-recently-used ordering of List.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a store backed by the given redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) recordKey(key Key) string {
	return redisKeyPrefix + string(key)
}

// Load returns the session stored under key. Records that fail to parse or
// are incomplete are deleted and reported as ErrSessionNotFound.
func (s *RedisStore) Load(ctx context.Context, key Key) (*Session, error) {
	data, err := s.client.Get(ctx, s.recordKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || !sess.Complete() {
		_ = s.Remove(ctx, key)
		return nil, ErrSessionNotFound
	}

	return &sess, nil
}

// Save stores the session under key, preserving the CreatedAt of an
// existing record.
func (s *RedisStore) Save(ctx context.Context, key Key, sess *Session) error {
	if !sess.Complete() {
		return ErrInvalidSession
	}

	record := sess.Clone()
	if existing, err := s.Load(ctx, key); err == nil {
		record.CreatedAt = existing.CreatedAt
	}
	record.Touch()

	return s.write(ctx, key, record)
}

// Touch advances the stored session's last-used timestamp.
func (s *RedisStore) Touch(ctx context.Context, key Key) error {
	sess, err := s.Load(ctx, key)
	if err != nil {
		return err
	}

	sess.Touch()
	return s.write(ctx, key, sess)
}

// Remove deletes the session under key. Absent keys are not an error.
func (s *RedisStore) Remove(ctx context.Context, key Key) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.recordKey(key))
	pipe.ZRem(ctx, redisIndexKey, string(key))
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// List returns all stored sessions, most recently used first.
func (s *RedisStore) List(ctx context.Context) ([]*Session, error) {
	keys, err := s.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	sessions := make([]*Session, 0, len(keys))
	for _, k := range keys {
		sess, err := s.Load(ctx, Key(k))
		if err != nil {
			continue
		}
		sessions = append(sessions, sess)
	}

	return sessions, nil
}

// ClearAll removes every stored session and returns the count removed.
func (s *RedisStore) ClearAll(ctx context.Context) (int, error) {
	keys, err := s.client.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	removed := 0
	for _, k := range keys {
		if err := s.Remove(ctx, Key(k)); err == nil {
			removed++
		}
	}

	return removed, nil
}

func (s *RedisStore) write(ctx context.Context, key Key, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.recordKey(key), data, 0)
	pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: sess.LastUsedAt, Member: string(key)})
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	return nil
}
