// Package redis implements the movie info read-through cache on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
)

const defaultTTL = 5 * time.Minute

// Cache defines a Redis-backed movie info cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis cache instance.
func New(addr string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    defaultTTL,
	}
}

func key(id string) string {
	return fmt.Sprintf("movieinfo:%s", id)
}

// Get retrieves a cached movie info record, or ErrNotFound on a miss.
func (c *Cache) Get(ctx context.Context, id string) (*model.MovieInfo, error) {
	b, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var info model.MovieInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Put stores a record under its id with the cache TTL.
func (c *Cache) Put(ctx context.Context, id string, info *model.MovieInfo) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(id), b, c.ttl).Err()
}

// Del drops a record from the cache; absent keys are not an error.
func (c *Cache) Del(ctx context.Context, id string) error {
	return c.client.Del(ctx, key(id)).Err()
}
