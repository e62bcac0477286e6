package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionStorage keeps fiber session payloads in process memory.
// It satisfies fiber.Storage.
type SessionStorage struct {
	cache *cache.Cache
}

func NewSessionStorage(defaultExpiration time.Duration) *SessionStorage {
	// Purge expired sessions every 10 minutes
	c := cache.New(defaultExpiration, 10*time.Minute)
	return &SessionStorage{
		cache: c,
	}
}

func (s *SessionStorage) Get(key string) ([]byte, error) {
	if x, found := s.cache.Get(key); found {
		return x.([]byte), nil
	}
	return nil, nil
}

func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if exp <= 0 {
		exp = cache.DefaultExpiration
	}
	// copy: fiber reuses its buffers
	buf := make([]byte, len(val))
	copy(buf, val)
	s.cache.Set(key, buf, exp)
	return nil
}

func (s *SessionStorage) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *SessionStorage) Reset() error {
	s.cache.Flush()
	return nil
}

func (s *SessionStorage) Close() error {
	return nil
}
