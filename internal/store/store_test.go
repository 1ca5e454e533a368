package store

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	lite, err := NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemory(),
		"redis":  NewRedis(rdb, "pitch:"),
		"sqlite": lite,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "accessToken", "abc"))
			val, err := s.Get(ctx, "accessToken")
			require.NoError(t, err)
			assert.Equal(t, "abc", val)

			require.NoError(t, s.Set(ctx, "accessToken", "def"))
			val, err = s.Get(ctx, "accessToken")
			require.NoError(t, err)
			assert.Equal(t, "def", val)

			require.NoError(t, s.Set(ctx, "refreshToken", "r"))
			require.NoError(t, s.Delete(ctx, "accessToken", "refreshToken"))
			_, err = s.Get(ctx, "refreshToken")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete(ctx))
			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	type draft struct {
		FacilityID int64 `json:"facilityId"`
		Hours      int   `json:"hours"`
	}

	require.NoError(t, SetJSON(ctx, s, "bookingData", draft{FacilityID: 3, Hours: 2}))

	var got draft
	require.NoError(t, GetJSON(ctx, s, "bookingData", &got))
	assert.Equal(t, draft{FacilityID: 3, Hours: 2}, got)

	require.NoError(t, s.Set(ctx, "bookingData", "{broken"))
	assert.Error(t, GetJSON(ctx, s, "bookingData", &got))

	assert.ErrorIs(t, GetJSON(ctx, s, "absent", &got), ErrNotFound)
}

func TestRedisPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(rdb, "pitch:")

	require.NoError(t, s.Set(context.Background(), "accessToken", "tok"))
	raw, err := mr.Get("pitch:accessToken")
	require.NoError(t, err)
	assert.Equal(t, "tok", raw)
}
