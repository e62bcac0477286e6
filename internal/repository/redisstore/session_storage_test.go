package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping redis test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping redis test: %v", err)
	}
	return rdb
}

func TestSessionStorageAgainstRedis(t *testing.T) {
	s := NewSessionStorage(newTestClient(t))
	s.prefix = "notez:test:" + t.Name() + ":"
	defer s.Close()

	require.NoError(t, s.Set("sid", []byte("payload"), time.Minute))

	got, err := s.Get("sid")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, s.Reset())
	got, err = s.Get("sid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStorageIgnoresEmptyKeys(t *testing.T) {
	s := NewSessionStorage(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))

	got, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, s.Set("", []byte("x"), 0))
	assert.NoError(t, s.Delete(""))
}
