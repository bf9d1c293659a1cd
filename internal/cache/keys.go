package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The owner id is part of the key so a cached detail can never be served to
// a different user.
const (
	RecipeDetailKeyPrefix = "user:%d:recipe:%d:detail"
)

const (
	RecipeDetailTTL = 10 * time.Minute
)

// ErrCacheMiss is returned by GetJSON when the key is absent or caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

func RecipeDetailKey(userID, recipeID uint) string {
	return fmt.Sprintf(RecipeDetailKeyPrefix, userID, recipeID)
}

// GetJSON fetches key and unmarshals it into dest.
func GetJSON(ctx context.Context, key string, dest any) error {
	if client == nil {
		return ErrCacheMiss
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON marshals value and stores it under key with the given TTL.
// Failures are swallowed; callers never block on the cache.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// Invalidate removes key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateRecipe drops the cached detail representation of a recipe.
func InvalidateRecipe(ctx context.Context, userID, recipeID uint) {
	Invalidate(ctx, RecipeDetailKey(userID, recipeID))
}
