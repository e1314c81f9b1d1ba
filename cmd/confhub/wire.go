//go:build wireinject
// +build wireinject

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

package main

import (
	"github.com/go-arcade/confhub/internal/engine/bootstrap"
	"github.com/go-arcade/confhub/internal/engine/config"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/internal/engine/router"
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

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// config
		config.ProviderSet,
		// log (config)
		log.ProviderSet,
		// database (config, log)
		database.ProviderSet,
		// redis and cache (config)
		cache.ProviderSet,
		repo.ProviderSet,
		// change events (config, redis)
		notify.ProviderSet,
		service.ProviderSet,
		metrics.ProviderSet,
		pprof.ProviderSet,
		router.ProviderSet,
		http.ProviderSet,
		bootstrap.NewApp,
	))
}
