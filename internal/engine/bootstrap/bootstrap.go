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

package bootstrap

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/confhub/internal/engine/config"
	"github.com/go-arcade/confhub/internal/engine/service"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/pprof"
	"github.com/go-arcade/confhub/pkg/trace"
)

type App struct {
	Server   *httpx.Server
	Metrics  *metrics.Server
	Pprof    *pprof.Server
	Notifier *notify.Manager
	Services *service.Services
	Loader   *config.Loader
	Logger   *log.Logger
	AppConf  *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	server *httpx.Server,
	metricsServer *metrics.Server,
	pprofServer *pprof.Server,
	notifier *notify.Manager,
	services *service.Services,
	loader *config.Loader,
	logger *log.Logger,
	appConf *config.AppConfig,
) *App {
	return &App{
		Server:   server,
		Metrics:  metricsServer,
		Pprof:    pprofServer,
		Notifier: notifier,
		Services: services,
		Loader:   loader,
		Logger:   logger,
		AppConf:  appConf,
	}
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Run starts every listener and blocks until a signal arrives or the HTTP
// listener fails, then shuts down in reverse order.
func Run(app *App, cleanup func()) {
	conf := app.AppConf
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := trace.Init(ctx, conf.Trace); err != nil {
		log.Warnw("tracing init failed, continuing without export", "error", err)
	}

	if conf.Database.Seed {
		if err := app.Services.Environment.Seed(ctx); err != nil {
			log.Errorw("environment seed failed", "error", err)
		}
	}

	current := conf.Log
	app.Loader.OnChange(func(next config.AppConfig) {
		if next.Log == current {
			return
		}
		if err := log.Init(&next.Log); err != nil {
			log.Errorw("failed to apply log settings", "error", err)
			return
		}
		current = next.Log
		log.Infow("log settings reloaded", "level", next.Log.Level, "output", next.Log.Output)
	})
	app.Loader.Watch()

	if err := app.Metrics.Start(); err != nil {
		log.Errorw("Metrics server failed", "error", err)
	}
	if err := app.Pprof.Start(); err != nil {
		log.Errorw("Pprof server failed", "error", err)
	}

	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		if err := app.Notifier.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("change relay stopped", "error", err)
		}
	}()

	app.Server.Start()

	select {
	case <-ctx.Done():
		log.Info("Received signal, shutting down gracefully...")
	case err, ok := <-app.Server.Err():
		if ok && err != nil {
			log.Errorw("HTTP listener failed", "address", conf.Http.Addr(), "error", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(conf.Http.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}
	if err := app.Metrics.Stop(shutdownCtx); err != nil {
		log.Errorw("Failed to stop metrics server", "error", err)
	}
	if err := app.Pprof.Stop(shutdownCtx); err != nil {
		log.Errorw("Failed to stop pprof server", "error", err)
	}
	select {
	case <-relayDone:
	case <-shutdownCtx.Done():
		log.Warn("change relay did not stop in time")
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		log.Warnw("trace shutdown error", "error", err)
	}

	// closes redis, the database and the websocket hub
	cleanup()

	log.Info("Server shutdown complete")
	_ = log.Sync()
}
