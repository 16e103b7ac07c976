package cartstate

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the record under StorageKey, or StorageKey:<Namespace>.
// A zero TTL keeps it until cleared.
type RedisStorage struct {
	Client    redis.UniversalClient
	Namespace string
	TTL       time.Duration
}

func (r *RedisStorage) Key() string {
	if r.Namespace == "" {
		return StorageKey
	}
	return StorageKey + ":" + r.Namespace
}

func (r *RedisStorage) Load(ctx context.Context) ([]Item, error) {
	data, err := r.Client.Get(ctx, r.Key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (r *RedisStorage) Save(ctx context.Context, items []Item) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.Key(), data, r.TTL).Err()
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
