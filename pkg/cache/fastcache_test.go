// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastCache_Set_Get(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{MaxBytes: 1024 * 1024})
	defer cache.Clear()
	ctx := context.Background()

	require.Equal(t, "OK", cache.Set(ctx, "k", "v", time.Hour).Val())

	got, err := cache.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestFastCache_Miss(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	_, err := cache.Get(context.Background(), "absent").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFastCache_Expiration(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{MaxBytes: 1024 * 1024})
	now := time.Unix(1700000000, 0)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "short", "v", time.Minute)
	cache.Set(ctx, "forever", "v", 0)

	now = now.Add(2 * time.Minute)

	_, err := cache.Get(ctx, "short").Result()
	assert.ErrorIs(t, err, redis.Nil)
	assert.Equal(t, "v", cache.Get(ctx, "forever").Val())
}

func TestFastCache_Del(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{MaxBytes: 1024 * 1024})
	ctx := context.Background()

	cache.Set(ctx, "a", "1", 0)
	cache.Set(ctx, "b", "2", 0)

	assert.EqualValues(t, 2, cache.Del(ctx, "a", "b", "c").Val())
	_, err := cache.Get(ctx, "a").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFastCache_SetStruct(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	ctx := context.Background()

	cache.Set(ctx, "obj", map[string]int{"n": 1}, 0)
	assert.JSONEq(t, `{"n":1}`, cache.Get(ctx, "obj").Val())
}

// backend strips the key prefix wrapper.
func backend(t *testing.T, c ICache) ICache {
	t.Helper()
	p, ok := c.(*prefixed)
	require.True(t, ok, "provided cache is prefixed")
	assert.Equal(t, "confhub:", p.prefix)
	return p.ICache
}

func TestProvideICache(t *testing.T) {
	_, local := backend(t, ProvideICache(&Conf{}, nil)).(*FastCache)
	assert.True(t, local)

	_, fallback := backend(t, ProvideICache(&Conf{Mode: ModeRedis}, nil)).(*FastCache)
	assert.True(t, fallback, "redis mode without a client falls back to local")

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	_, remote := backend(t, ProvideICache(&Conf{Mode: ModeRedis}, client)).(*RedisCache)
	assert.True(t, remote)

	custom := ProvideICache(&Conf{KeyPrefix: "app:"}, nil).(*prefixed)
	assert.Equal(t, "app:", custom.prefix)
}

func TestWithPrefix(t *testing.T) {
	inner := NewFastCache(FastCacheConfig{})
	c := WithPrefix(inner, "confhub:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "secret:db", "sealed", 0).Err())
	got, err := inner.Get(ctx, "confhub:secret:db").Result()
	require.NoError(t, err)
	assert.Equal(t, "sealed", got)

	n, err := c.Del(ctx, "secret:db").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.ErrorIs(t, c.Get(ctx, "secret:db").Err(), redis.Nil)
}
