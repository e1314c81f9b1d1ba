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

package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*fiber.App, httpx.Auth) {
	t.Helper()
	cfg := &httpx.Http{Auth: httpx.Auth{SecretKey: "test-secret"}}
	cfg.SetDefaults()
	app := fiber.New(cfg.FiberConfig())
	app.Use(ExceptionMiddleware, RequestMiddleware(), TraceMiddleware(), AccessLogMiddleware(cfg))
	return app, cfg.Auth
}

func TestAuthorizationMiddleware(t *testing.T) {
	app, auth := newApp(t)
	admin := app.Group("/admin", AuthorizationMiddleware(auth), UnifiedResponseMiddleware())
	admin.Get("/whoami", func(c *fiber.Ctx) error {
		c.Locals(DETAIL, Actor(c))
		return nil
	})

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin/whoami", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/whoami", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := jwt.GenToken("alice", auth.Issuer, []byte(auth.SecretKey), time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/admin/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

		body, _ := io.ReadAll(resp.Body)
		var r httpx.Response
		require.NoError(t, sonic.Unmarshal(body, &r))
		assert.Equal(t, httpx.Success.Code, r.Code)
		assert.Equal(t, "alice", r.Detail)
	})
}

func TestUnifiedResponseOperation(t *testing.T) {
	app, _ := newApp(t)
	app.Delete("/thing", UnifiedResponseMiddleware(), func(c *fiber.Ctx) error {
		c.Locals(OPERATION, true)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/thing", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"code":200,"msg":"Request Success"}`, string(body))
}

func TestExceptionMiddleware(t *testing.T) {
	app, _ := newApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "kaboom")
}

func TestRequestMiddlewareKeepsIncomingID(t *testing.T) {
	app, _ := newApp(t)
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(REQUESTID).(string))
	})

	req := httptest.NewRequest("GET", "/id", nil)
	req.Header.Set("X-Request-Id", "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "req-1", string(body))
}

func TestExcluded(t *testing.T) {
	assert.True(t, excluded("/health"))
	assert.True(t, excluded("/ws/changes"))
	assert.False(t, excluded("/api/configuration"))
}
