package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "notez:sess:"

// SessionStorage keeps fiber session payloads in Redis so sessions survive
// restarts and are shared between instances. It satisfies fiber.Storage.
type SessionStorage struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration
}

func NewSessionStorage(rdb *redis.Client) *SessionStorage {
	return &SessionStorage{
		rdb:     rdb,
		prefix:  defaultPrefix,
		timeout: 3 * time.Second,
	}
}

func (s *SessionStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	return s.rdb.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// Reset drops every session under the prefix, leaving other keys alone.
func (s *SessionStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *SessionStorage) Close() error {
	return s.rdb.Close()
}
