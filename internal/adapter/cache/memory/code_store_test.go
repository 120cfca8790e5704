package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"taskapp/internal/adapter/cache/memory"

	"github.com/stretchr/testify/assert"
)

func TestCodeStore_PutAndTake(t *testing.T) {
	store := memory.NewCodeStore()

	err := store.Put(context.Background(), "abc123", "user-uuid", time.Minute)
	assert.NoError(t, err)

	value, found, err := store.Take(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "user-uuid", value)
}

func TestCodeStore_TakeIsSingleUse(t *testing.T) {
	store := memory.NewCodeStore()

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
	store := memory.NewCodeStore()

	value, found, err := store.Take(context.Background(), "never-stored")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestCodeStore_TakeExpiredCode(t *testing.T) {
	store := memory.NewCodeStore()

	err := store.Put(context.Background(), "abc123", "user-uuid", time.Millisecond)
	assert.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, found, err := store.Take(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.False(t, found)
}

func TestCodeStore_ConcurrentTakeSingleWinner(t *testing.T) {
	store := memory.NewCodeStore()

	err := store.Put(context.Background(), "abc123", "user-uuid", time.Minute)
	assert.NoError(t, err)

	var wins int64
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, found, err := store.Take(context.Background(), "abc123")

			if err == nil && found {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(1), wins)
}
