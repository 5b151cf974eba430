package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the cache document under a single redis key, for setups
// where several machines take turns running the pipelines. The whole
// document is still written at once, preserving the one-writer-at-a-time
// discipline of the file store.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to addr and stores the document under key.
func NewRedisStore(addr, key string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
	}
}

// Load reads the document. A missing key is an empty document.
func (s *RedisStore) Load(ctx context.Context) (Document, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save overwrites the stored document.
func (s *RedisStore) Save(ctx context.Context, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
