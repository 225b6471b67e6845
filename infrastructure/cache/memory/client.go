// ABOUTME: In-memory cache implementation backed by go-cache
// ABOUTME: Default cache backend for single-process deployments

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Client implements the Cache interface using an in-process go-cache store.
type Client struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache client.
func NewMemoryCache(defaultExpiration time.Duration) *Client {
	return &Client{
		store: gocache.New(defaultExpiration, 10*time.Minute),
	}
}

// Get retrieves a value from the cache
func (c *Client) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}
	value, found := c.store.Get(key)
	if !found {
		return nil, errors.New("key not found")
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, errors.New("cached value is not bytes")
	}
	return data, nil
}

// Set stores a value in the cache with TTL
func (c *Client) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	c.store.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	c.store.Delete(key)
	return nil
}
