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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/confhub/internal/engine/service"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/pkg/cache"
	"github.com/go-arcade/confhub/pkg/database"
	"github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/pprof"
	"github.com/go-arcade/confhub/pkg/trace"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 15:02
 * @file: config.go
 * @description: toml config file, .env and CONFHUB_ environment overrides
 */

// EnvPrefix prefixes every environment override, e.g. CONFHUB_SECRET_MASTERKEY.
const EnvPrefix = "CONFHUB"

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Cache    cache.Conf
	Secret   service.SecretConf
	Notify   notify.Conf
	Metrics  metrics.MetricsConfig
	Pprof    pprof.PprofConfig
	Trace    trace.Conf
}

// secrets are read from the environment even when the file does not mention them.
var envOnlyKeys = []string{
	"secret.masterKey",
	"http.auth.secretKey",
	"database.mysql.password",
	"database.postgres.password",
	"redis.password",
}

// Loader keeps the viper instance alive so file edits can be observed.
type Loader struct {
	v        *viper.Viper
	path     string
	mu       sync.Mutex
	onChange []func(AppConfig)
}

func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnlyKeys {
		_ = v.BindEnv(key)
	}
	return &Loader{v: v, path: path}
}

// Load reads the .env file next to the config file, when present, then the
// config file itself, and fills defaults.
func (l *Loader) Load() (*AppConfig, error) {
	envFile := filepath.Join(filepath.Dir(l.path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	conf, err := l.decode()
	if err != nil {
		return nil, err
	}
	log.Infow("config file loaded",
		"path", l.path,
		"database", conf.Database.Type,
		"cache", conf.Cache.Mode,
	)
	return conf, nil
}

func (l *Loader) decode() (*AppConfig, error) {
	var conf AppConfig
	if err := l.v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	conf.SetDefaults()
	return &conf, nil
}

// OnChange registers fn to run with the freshly decoded config after every
// edit of the file. Only settings read at use time, like the log level, take
// effect without a restart.
func (l *Loader) OnChange(fn func(AppConfig)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts observing the config file.
func (l *Loader) Watch() {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed, reloading", "file", e.Name, "op", e.Op.String())
		conf, err := l.decode()
		if err != nil {
			log.Errorw("failed to reload configuration", "file", e.Name, "error", err)
			return
		}
		l.mu.Lock()
		fns := append([]func(AppConfig){}, l.onChange...)
		l.mu.Unlock()
		for _, fn := range fns {
			fn(*conf)
		}
	})
	l.v.WatchConfig()
}

// SetDefaults fills every section's unset values.
func (c *AppConfig) SetDefaults() {
	if c.Log == (log.Conf{}) {
		c.Log = *log.SetDefaults()
	}
	c.Http.SetDefaults()
	c.Database.SetDefaults()
	c.Cache.SetDefaults()
	c.Secret.SetDefaults()
	c.Notify.SetDefaults()
	c.Metrics.SetDefaults()
	c.Pprof.SetDefaults()
	c.Trace.SetDefaults()
}

// Validate rejects configurations the server cannot start with.
func (c *AppConfig) Validate() error {
	if c.Secret.MasterKey == "" {
		return fmt.Errorf("secret.masterKey is required (or %s_SECRET_MASTERKEY)", EnvPrefix)
	}
	if c.Http.Auth.SecretKey == "" {
		return fmt.Errorf("http.auth.secretKey is required (or %s_HTTP_AUTH_SECRETKEY)", EnvPrefix)
	}
	if c.Redis.Address == "" && (c.Cache.Mode == cache.ModeRedis || c.Notify.Redis) {
		log.Warnw("redis is requested but redis.address is empty", "cache", c.Cache.Mode, "notify.redis", c.Notify.Redis)
	}
	return c.Log.Validate()
}
