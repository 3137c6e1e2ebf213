package xredis

import (
	"context"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/config"
	"github.com/redis/go-redis/v9"
)

// Client is the subset of redis used for hot counters. Values cached here are
// always rebuildable from the database.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exist(ctx context.Context, key string) (bool, error)
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context, cfg config.RedisConfigs) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

// Nil is re-exported so callers need not import the driver to detect a miss.
var Nil = redis.Nil

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.redisClient.Set(ctx, key, value, ttl).Err()
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	return c.redisClient.Del(ctx, keys...).Err()
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}
