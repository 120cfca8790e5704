package redis_test

import (
	"context"
	"testing"
	"time"

	rediscache "taskapp/internal/adapter/cache/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) (*rediscache.CodeStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	return rediscache.NewCodeStore(client), mr
}

func TestCodeStore_PutAndTake(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Put(context.Background(), "abc123", "user-uuid", time.Minute)
	assert.NoError(t, err)

	value, found, err := store.Take(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "user-uuid", value)
}

func TestCodeStore_TakeIsSingleUse(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Put(context.Background(), "abc123", "user-uuid", time.Minute)
	assert.NoError(t, err)

	_, found, err := store.Take(context.Background(), "abc123")
	assert.NoError(t, err)
	assert.True(t, found)

	_, found, err = store.Take(context.Background(), "abc123")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestCodeStore_TakeMissingCode(t *testing.T) {
	store, _ := newTestStore(t)

	value, found, err := store.Take(context.Background(), "never-stored")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestCodeStore_TakeExpiredCode(t *testing.T) {
	store, mr := newTestStore(t)

	err := store.Put(context.Background(), "abc123", "user-uuid", time.Minute)
	assert.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Take(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.False(t, found)
}
