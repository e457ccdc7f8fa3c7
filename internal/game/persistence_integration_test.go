//go:build integration

package game

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, rdb.Ping(ctx).Err(), "redis is not reachable")
	return rdb
}

func TestRedisPersistence_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	persist := NewRedisRoomStore(rdb, time.Hour)
	reg := NewRegistry(persist)

	res, gerr := CreateRoom(reg, "Kai", nil, 1000)
	require.Nil(t, gerr)
	room := res.Room

	room.Lock()
	reg.SaveSnapshot(ctx, room)
	room.Unlock()

	// a second registry over the same redis sees the room
	reg2 := NewRegistry(persist)
	restored, ok, err := reg2.GetOrLoad(ctx, room.Code)
	require.NoError(t, err)
	require.True(t, ok)

	restored.Lock()
	require.Equal(t, room.Code, restored.Code)
	require.Equal(t, room.CreatorID, restored.CreatorID)
	require.Len(t, restored.Players, 1)
	restored.Unlock()

	// delete removes both the live entry and the snapshot
	reg2.Delete(ctx, room.Code)
	_, ok, err = NewRegistry(persist).GetOrLoad(ctx, room.Code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisPersistence_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	persist := NewRedisRoomStore(rdb, time.Second)
	reg := NewRegistry(persist)

	res, gerr := CreateRoom(reg, "Kai", nil, 1000)
	require.Nil(t, gerr)

	res.Room.Lock()
	reg.SaveSnapshot(ctx, res.Room)
	res.Room.Unlock()

	time.Sleep(1500 * time.Millisecond)

	_, ok, err := NewRegistry(persist).GetOrLoad(ctx, res.Room.Code)
	require.NoError(t, err)
	require.False(t, ok, "snapshot survived its TTL")
}
