package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapRedis answers the three commands the store issues from a map.
type mapRedis struct {
	redis.UniversalClient
	data map[string]string
}

func newMapRedis() *mapRedis {
	return &mapRedis{data: map[string]string{}}
}

func (m *mapRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mapRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mapRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *mapRedis) Close() error { return nil }

func TestRedis_MapClient(t *testing.T) {
	client := newMapRedis()
	exerciseStore(t, NewRedisClient(client))

	require.NoError(t, NewRedisClient(client).Set(context.Background(), "barber_token", "abc"))
	for k := range client.data {
		assert.True(t, strings.HasPrefix(k, redisPrefix), k)
	}
}

func TestRedis_ErrorsSurface(t *testing.T) {
	s := NewRedisClient(&failingRedis{mapRedis: newMapRedis()})

	_, _, err := s.Get(context.Background(), "barber_token")
	assert.EqualError(t, err, "connection refused")
}

type failingRedis struct {
	*mapRedis
}

func (f *failingRedis) Get(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", errors.New("connection refused"))
}

// TestRedis_Server runs against a live server when REDIS_ADDR is set.
func TestRedis_Server(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	s, err := NewRedis(addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Remove(context.Background(), "barber_token", "barber_user"))
	exerciseStore(t, s)
}
