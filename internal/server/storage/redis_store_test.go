package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	roomData := &RoomData{
		Code:      "123456",
		GameID:    "g-1",
		Status:    "IN_PROGRESS",
		Players:   []PlayerData{{ID: "p1", Name: "Alice", CardsCount: 7}, {ID: "ai", Name: "Bot", Seat: 1, IsAI: true, Level: "Easy", CardsCount: 6}},
		TopCard:   "Red 7",
		Direction: "clockwise",
		DeckCount: 93,
		CreatedAt: time.Now().Unix(),
	}

	require.NoError(t, store.SaveRoom(ctx, roomData))

	loaded, err := store.LoadRoom(ctx, roomData.Code)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, roomData, loaded)

	require.NoError(t, store.DeleteRoom(ctx, roomData.Code))

	loaded, err = store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveNil(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()

	assert.NoError(t, store.SaveRoom(context.Background(), nil))
	assert.Empty(t, mr.Keys())
}

func TestRedisStore_RoomExpiration(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveRoom(ctx, &RoomData{Code: "111111"}))
	assert.Equal(t, roomExpiration, mr.TTL(roomKeyPrefix+"111111"))

	require.NoError(t, store.SetRoomExpiration(ctx, "111111", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(roomKeyPrefix+"111111"))

	mr.FastForward(2 * time.Minute)
	loaded, err := store.LoadRoom(ctx, "111111")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_GetAllRoomCodes(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	for _, code := range []string{"100001", "100002", "100003"} {
		require.NoError(t, store.SaveRoom(ctx, &RoomData{Code: code}))
	}
	// 非房间 key 不应被扫描到
	mr.HSet("player:stats:p1", "wins", "1")

	codes, err := store.GetAllRoomCodes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"100001", "100002", "100003"}, codes)
}

func TestRedisStore_LoadCorrupted(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()

	require.NoError(t, mr.Set(roomKeyPrefix+"bad", "not json"))
	_, err := store.LoadRoom(context.Background(), "bad")
	assert.Error(t, err)
}
