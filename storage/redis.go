package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a slot stored as a string value of a Redis server.
type Redis struct {
	client *redis.Client
	key    string
}

// OpenRedis connects to the server at url (redis://[user:pass@]host:port/db)
// and returns the slot under key.
//
// The connection is checked with a ping.
func OpenRedis(url, key string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Redis{client: rdb, key: key}, nil
}

// Close closes the client.
func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("no sets under key %q: %w", r.key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read key %q: %w", r.key, err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write key %q: %w", r.key, err)
	}
	return nil
}
