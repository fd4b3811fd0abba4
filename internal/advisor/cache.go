// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quixsi/luxeplate/internal/model"
)

// RedisCache keeps similar-menu answers so repeated profile visits do not hit
// the model again.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) SimilarMenusKey(cuisine string, pricePoint float64, excludeChefName string) string {
	return fmt.Sprintf("similar:%s:%.2f:%s",
		strings.ToLower(cuisine), pricePoint, strings.ToLower(excludeChefName))
}

// GetMenus reports a miss as (nil, false, nil).
func (c *RedisCache) GetMenus(ctx context.Context, key string) ([]model.MenuRecommendation, bool, error) {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var recs []model.MenuRecommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false, err
	}
	return recs, true, nil
}

func (c *RedisCache) SetMenus(ctx context.Context, key string, recs []model.MenuRecommendation) error {
	payload, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}
