package cartstate

import "fmt"

// StorageFor picks Redis when redisURL is set and a JSON file under dir
// otherwise. The returned func releases the Redis connection.
func StorageFor(redisURL, dir, namespace string) (Storage, func() error, error) {
	if redisURL == "" {
		return &FileStorage{Dir: dir, Namespace: namespace}, func() error { return nil }, nil
	}

	client, err := NewRedisClient(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("redis url: %w", err)
	}
	return &RedisStorage{Client: client, Namespace: namespace}, client.Close, nil
}
