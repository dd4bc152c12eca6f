package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Well-known session fields. The session carries only what the page helpers
// need between requests: the active language and the single flash slot.
const (
	FieldLang      = "lang"
	FieldFlashKind = "flash_kind"
	FieldFlashMsg  = "flash_msg"
)

// Store is the per-session key/value storage behind locale and flash state.
type Store interface {
	Get(ctx context.Context, sid, field string) (string, error)
	Set(ctx context.Context, sid, field, value string) error
	Delete(ctx context.Context, sid string, fields ...string) error
}

// RedisStore keeps one Redis hash per session id, refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sid string) string {
	return "session:" + sid
}

func (s *RedisStore) Get(ctx context.Context, sid, field string) (string, error) {
	value, err := s.client.HGet(ctx, s.key(sid), field).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, field, value string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key(sid), field, value)
	pipe.Expire(ctx, s.key(sid), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Delete(ctx context.Context, sid string, fields ...string) error {
	if len(fields) == 0 {
		return s.client.Del(ctx, s.key(sid)).Err()
	}
	return s.client.HDel(ctx, s.key(sid), fields...).Err()
}
