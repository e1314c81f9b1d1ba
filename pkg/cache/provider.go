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
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// defaultLocalMaxBytes is the default cache size (32MB)
const defaultLocalMaxBytes = 32 * 1024 * 1024

// ProviderSet 提供缓存依赖（Redis + 本地 FastCache）
var ProviderSet = wire.NewSet(
	ProvideRedis,
	ProvideICache,
)

// ProvideRedis connects to redis when an address is configured, otherwise returns a nil client.
func ProvideRedis(conf *Redis) (redis.UniversalClient, func(), error) {
	if conf.Address == "" {
		return nil, func() {}, nil
	}
	client, err := NewRedis(*conf)
	if err != nil {
		return nil, nil, err
	}
	return client, func() {
		if err := client.Close(); err != nil {
			log.Warnw("failed to close redis", "error", err)
		}
	}, nil
}

// ProvideICache picks redis when configured and reachable, fastcache otherwise.
func ProvideICache(conf *Conf, client redis.UniversalClient) ICache {
	conf.SetDefaults()
	if conf.Mode == ModeRedis {
		if client != nil {
			return WithPrefix(NewRedisCache(client), conf.KeyPrefix)
		}
		log.Warnw("cache mode is redis but no redis is configured, falling back to local cache")
	}
	return WithPrefix(NewFastCache(FastCacheConfig{MaxBytes: conf.LocalMaxBytes}), conf.KeyPrefix)
}
