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
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ModeLocal = "local"
	ModeRedis = "redis"
)

// Conf selects the cache backend.
type Conf struct {
	Mode          string // local or redis
	LocalMaxBytes int
	KeyPrefix     string
}

// SetDefaults fills unset values.
func (c *Conf) SetDefaults() {
	if c.Mode == "" {
		c.Mode = ModeLocal
	}
	if c.LocalMaxBytes <= 0 {
		c.LocalMaxBytes = defaultLocalMaxBytes
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "confhub:"
	}
}

// ICache is the redis-shaped key/value contract shared by the local and redis backends.
// A miss is reported as redis.Nil on the returned command.
type ICache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisCache Redis 缓存实现
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps client.
func NewRedisCache(client redis.UniversalClient) ICache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Del(ctx, keys...)
}

type prefixed struct {
	ICache
	prefix string
}

// WithPrefix namespaces every key of c.
func WithPrefix(c ICache, prefix string) ICache {
	if prefix == "" {
		return c
	}
	return &prefixed{ICache: c, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) *redis.StringCmd {
	return p.ICache.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	return p.ICache.Set(ctx, p.prefix+key, value, expiration)
}

func (p *prefixed) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = p.prefix + k
	}
	return p.ICache.Del(ctx, full...)
}
