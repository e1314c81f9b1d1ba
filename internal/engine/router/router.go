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

package router

import (
	"github.com/go-arcade/confhub/internal/engine/service"
	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/http/middleware"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/version"
	"github.com/go-arcade/confhub/pkg/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:48
 * @file: router.go
 * @description: setup router
 *  		     client api, admin api and ops endpoints
 */

type Router struct {
	Http     *httpx.Http
	Services *service.Services
	Hub      ws.Hub
	Metrics  *metrics.Server
}

func NewRouter(httpConf *httpx.Http, services *service.Services, hub ws.Hub, metricsServer *metrics.Server) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Hub:      hub,
		Metrics:  metricsServer,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(rt.Http.FiberConfig())

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.RequestMiddleware(),
		middleware.TraceMiddleware(),
	)
	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	// change notifications
	app.Use("/ws", ws.Upgrade)
	app.Get("/ws/changes", ws.Handle(rt.Hub, nil))

	api := app.Group("/api")
	rt.clientRouter(api)

	admin := api.Group("/admin",
		middleware.AuthorizationMiddleware(rt.Http.Auth),
		middleware.UnifiedResponseMiddleware(),
	)
	rt.applicationRouter(admin)
	rt.environmentRouter(admin)
	rt.uploadRouter(admin)
	rt.settingRouter(admin)
	rt.featureRouter(admin)
	rt.secretRouter(admin)

	// must stay last
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "request path not found")
	})

	return app
}
