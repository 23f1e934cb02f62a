package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servicehub/marketplace/internal/core/domain"
)

const geocodeTTL = 24 * time.Hour

// GeocodeCache implements ports.GeocodeCache.
type GeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGeocodeCache(client *redis.Client) *GeocodeCache {
	return &GeocodeCache{client: client, ttl: geocodeTTL}
}

func (c *GeocodeCache) Get(ctx context.Context, postalCode string) (domain.Coordinates, bool, error) {
	raw, err := c.client.Get(ctx, geocodeKey(postalCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, storeErr("geocode cache get", err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache decode: %w", err)
	}
	return coords, true, nil
}

func (c *GeocodeCache) Set(ctx context.Context, postalCode string, coords domain.Coordinates) error {
	raw, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("geocode cache encode: %w", err)
	}
	if err := c.client.Set(ctx, geocodeKey(postalCode), raw, c.ttl).Err(); err != nil {
		return storeErr("geocode cache set", err)
	}
	return nil
}

func geocodeKey(postalCode string) string {
	return "geocode:pincode:" + postalCode
}
