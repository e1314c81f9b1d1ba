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
	"github.com/go-arcade/confhub/internal/engine/service"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/pkg/cache"
	"github.com/go-arcade/confhub/pkg/database"
	"github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/pprof"
	"github.com/google/wire"
)

// ProviderSet hands every config section to the layers that need it.
var ProviderSet = wire.NewSet(
	ProvideLoader,
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideCacheConfig,
	ProvideSecretConfig,
	ProvideNotifyConfig,
	ProvideMetricsConfig,
	ProvidePprofConfig,
)

func ProvideLoader(configPath string) *Loader {
	return NewLoader(configPath)
}

// ProvideConf loads and validates the configuration.
func ProvideConf(loader *Loader) (*AppConfig, error) {
	conf, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	return &appConf.Http
}

func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

func ProvideDatabaseConfig(appConf *AppConfig) database.Database {
	return appConf.Database
}

func ProvideRedisConfig(appConf *AppConfig) *cache.Redis {
	return &appConf.Redis
}

func ProvideCacheConfig(appConf *AppConfig) *cache.Conf {
	return &appConf.Cache
}

func ProvideSecretConfig(appConf *AppConfig) *service.SecretConf {
	return &appConf.Secret
}

func ProvideNotifyConfig(appConf *AppConfig) *notify.Conf {
	return &appConf.Notify
}

func ProvideMetricsConfig(appConf *AppConfig) *metrics.MetricsConfig {
	return &appConf.Metrics
}

func ProvidePprofConfig(appConf *AppConfig) *pprof.PprofConfig {
	return &appConf.Pprof
}
