package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/s7db/pkg/errors"
)

// RedisOptions configures a [RedisCache].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key.
	Prefix string
}

// RedisCache stores entries in Redis (or Valkey). Expiry is handled by the
// server via key TTLs.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to redis at %s", opts.Addr)
	}
	return &RedisCache{client: client, prefix: opts.Prefix}, nil
}

// Get implements [Cache].
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCache, err, "redis get")
	}
	return data, true, nil
}

// Set implements [Cache]. A ttl <= 0 stores the key without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "redis set")
	}
	return nil
}

// Delete implements [Cache].
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "redis del")
	}
	return nil
}

// Clear deletes every key under the cache prefix and returns the count.
// With an empty prefix it refuses to run rather than flush the database.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	if c.prefix == "" {
		return 0, errors.New(errors.ErrCodeCache, "refusing to clear redis cache without a key prefix")
	}
	var n int
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, errors.Wrap(errors.ErrCodeCache, err, "redis del")
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, errors.Wrap(errors.ErrCodeCache, err, "redis scan")
	}
	return n, nil
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
