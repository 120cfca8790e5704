// Package memory backs the one-time exchange codes with an in-process cache.
// Suitable for a single instance; run the redis store behind a load balancer.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type CodeStore struct {
	cache *cache.Cache
	mutex sync.Mutex
}

func NewCodeStore() *CodeStore {
	return &CodeStore{
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (cs *CodeStore) Put(_ context.Context, code string, value string, ttl time.Duration) error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.cache.Set(code, value, ttl)

	return nil
}

// Take gets and deletes under one lock, so racing callers on the same code
// see at most one hit.
func (cs *CodeStore) Take(_ context.Context, code string) (string, bool, error) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	raw, found := cs.cache.Get(code)

	if !found {
		return "", false, nil
	}

	cs.cache.Delete(code)

	value, ok := raw.(string)

	if !ok {
		return "", false, nil
	}

	return value, true, nil
}
