package cache

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisReverseGeocodeCache stores addresses as JSON strings at "<prefix>:<cell>"
// with an expiry, so street renames eventually reach new reports.
type RedisReverseGeocodeCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisReverseGeocodeCache(client *redis.Client, prefix string, ttl time.Duration) *RedisReverseGeocodeCache {
	if prefix == "" {
		prefix = "revgeo"
	}
	return &RedisReverseGeocodeCache{client: client, prefix: prefix, ttl: ttl}
}

type cachedAddress struct {
	City   string `json:"city"`
	Street string `json:"street"`
}

func (c *RedisReverseGeocodeCache) Get(ctx context.Context, cell string) (_ *domain.Address, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if strings.TrimSpace(cell) == "" {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, c.prefix+":"+cell).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reverse geocode cache cell=%q: %w", cell, err)
	}

	var v cachedAddress
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("get reverse geocode cache cell=%q: decode: %w", cell, err)
	}

	return &domain.Address{City: v.City, Street: v.Street}, nil
}

func (c *RedisReverseGeocodeCache) Put(ctx context.Context, cell string, addr domain.Address) error {
	if strings.TrimSpace(cell) == "" {
		return fmt.Errorf("insert reverse geocode cache: empty cell key")
	}

	body, err := json.Marshal(cachedAddress{City: addr.City, Street: addr.Street})
	if err != nil {
		return fmt.Errorf("insert reverse geocode cache cell=%q: encode: %w", cell, err)
	}

	if err := c.client.Set(ctx, c.prefix+":"+cell, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert reverse geocode cache cell=%q: %w", cell, err)
	}

	return nil
}
