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
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
)

// ProviderSet provides the router and the fiber app built from it.
var ProviderSet = wire.NewSet(ProvideRouter, ProvideApp)

func ProvideRouter(httpConf *httpx.Http, services *service.Services, hub *ws.DefaultHub, metricsServer *metrics.Server) *Router {
	return NewRouter(httpConf, services, hub, metricsServer)
}

func ProvideApp(rt *Router) *fiber.App {
	return rt.Router()
}
