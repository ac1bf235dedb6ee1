package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "barber_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "barber_token", "abc"))
	require.NoError(t, s.Set(ctx, "barber_token", "def"))
	require.NoError(t, s.Set(ctx, "barber_user", `{"id":1}`))

	v, ok, err := s.Get(ctx, "barber_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def", v)

	require.NoError(t, s.Remove(ctx, "barber_token", "barber_user"))
	require.NoError(t, s.Remove(ctx, "barber_token"))

	_, ok, err = s.Get(ctx, "barber_user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestGorm_SQLiteMemory(t *testing.T) {
	s, err := NewGorm(":memory:")
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{StorageDriver: "floppy"})
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(&config.Config{StorageDriver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}
