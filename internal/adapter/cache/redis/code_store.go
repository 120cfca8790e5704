// Package redis backs the one-time exchange codes with Redis, so codes minted
// on one instance can be exchanged on another.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeKeyPrefix = "exchange_code:"

type CodeStore struct {
	client *redis.Client
}

func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

func (cs *CodeStore) Put(ctx context.Context, code string, value string, ttl time.Duration) error {
	return cs.client.Set(ctx, codeKeyPrefix+code, value, ttl).Err()
}

// Take relies on GETDEL for atomicity across processes.
func (cs *CodeStore) Take(ctx context.Context, code string) (string, bool, error) {
	value, err := cs.client.GetDel(ctx, codeKeyPrefix+code).Result()

	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return value, true, nil
}
