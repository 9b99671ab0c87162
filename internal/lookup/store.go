package lookup

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const versionKey = "lookup:version"

// store persists serialized collections under versioned keys.
type store interface {
	Version(ctx context.Context) (int64, error)
	Bump(ctx context.Context) (int64, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

func (s redisStore) Version(ctx context.Context) (int64, error) {
	ver, err := s.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := s.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
	}
	return ver, nil
}

func (s redisStore) Bump(ctx context.Context) (int64, error) {
	return s.client.Incr(ctx, versionKey).Result()
}

func (s redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (s redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// memoryStore is used when no Redis client is configured.
type memoryStore struct {
	mu      sync.Mutex
	version int64
	entries *expirable.LRU[string, []byte]
}

const memoryCapacity = 64

func newMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{version: 1, entries: expirable.NewLRU[string, []byte](memoryCapacity, nil, ttl)}
}

func (s *memoryStore) Version(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version, nil
}

func (s *memoryStore) Bump(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.entries.Purge()
	return s.version, nil
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := s.entries.Get(key)
	return value, ok, nil
}

// Set ignores ttl; entries expire after the TTL the store was built with.
func (s *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.entries.Add(key, value)
	return nil
}

func versionedKey(name string, ver int64) string {
	return "lookup:" + name + ":" + strconv.FormatInt(ver, 10)
}
