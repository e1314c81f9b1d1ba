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
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/internal/engine/service"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/internal/pkg/testutil"
	"github.com/go-arcade/confhub/pkg/cache"
	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/http/jwt"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app      *fiber.App
	services *service.Services
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &httpx.Http{ExposeMetrics: true, Auth: httpx.Auth{SecretKey: "router-test"}}
	cfg.SetDefaults()

	repos := repo.NewRepositories(testutil.NewTestDB(t))
	services, err := service.NewServices(repos, cache.NewFastCache(cache.FastCacheConfig{}), notify.Nop{},
		&service.SecretConf{MasterKey: "router-test"}, int64(cfg.MaxUploadBytes))
	require.NoError(t, err)

	hub := ws.NewHub()
	t.Cleanup(hub.Close)

	token, err := jwt.GenToken("alice", cfg.Auth.Issuer, []byte(cfg.Auth.SecretKey), time.Minute)
	require.NoError(t, err)

	rt := NewRouter(cfg, services, hub, metrics.NewServer(metrics.MetricsConfig{}))
	return &testServer{app: rt.Router(), services: services, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, admin bool) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if admin {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

// seed creates Development (default) and Production and one application.
func (s *testServer) seed(t *testing.T) (*model.Application, *model.Environment, *model.Environment) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.services.Environment.Seed(ctx))
	envs, err := s.services.Environment.ListEnvironments(ctx)
	require.NoError(t, err)
	byName := map[string]*model.Environment{}
	for _, e := range envs {
		byName[e.Name] = e
	}
	app, err := s.services.Application.CreateApplication(ctx, "billing", "alice")
	require.NoError(t, err)
	return app, byName["Development"], byName["Production"]
}

func multipartUpload(t *testing.T, fields map[string]string, name, doc string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = io.WriteString(fw, doc)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func (s *testServer) upload(t *testing.T, fields map[string]string, doc string) (*http.Response, []byte) {
	t.Helper()
	body, contentType := multipartUpload(t, fields, "billing.json", doc)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestOpsEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, body = s.do(t, http.MethodGet, "/version", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"goVersion"`)

	resp, body = s.do(t, http.MethodGet, "/metrics", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")

	resp, _ = s.do(t, http.MethodGet, "/ws/changes", nil, false)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/nowhere", nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, httpx.ProblemContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, string(body), "request path not found")
}

func TestAdminRequiresToken(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/api/admin/applications", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.do(t, http.MethodGet, "/api/admin/applications", nil, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var r httpx.Response
	require.NoError(t, sonic.Unmarshal(body, &r))
	assert.Equal(t, httpx.Success.Code, r.Code)
}

func TestConfigurationEndpoint(t *testing.T) {
	s := newTestServer(t)
	app, dev, prod := s.seed(t)

	resp, body := s.upload(t, map[string]string{"applicationId": uintString(app.ID), "environmentId": uintString(dev.ID)},
		`{"db":{"host":"x","port":5432},"flag":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"created":3`)

	resp, body = s.upload(t, map[string]string{"applicationId": uintString(app.ID), "environmentId": uintString(prod.ID)},
		`{"db":{"host":"prod-db"}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.do(t, http.MethodPost, "/api/configuration",
		map[string]string{"sid": app.Sid, "skey": app.SKey, "environment": "Production"}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got []service.KeyValue[*string]
	require.NoError(t, sonic.Unmarshal(body, &got))
	assert.Equal(t, []service.KeyValue[*string]{
		{Key: "db:host", Value: testutil.Ptr("prod-db")},
		{Key: "db:port", Value: testutil.Ptr("5432")},
		{Key: "flag", Value: testutil.Ptr("true")},
	}, got)

	resp, body = s.do(t, http.MethodPost, "/api/configuration",
		map[string]string{"sid": app.Sid, "skey": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var p httpx.Problem
	require.NoError(t, sonic.Unmarshal(body, &p))
	assert.Equal(t, "Login failed!", p.Title)
	assert.Empty(t, p.Detail)

	resp, _ = s.do(t, http.MethodPost, "/api/configuration", map[string]string{"sid": app.Sid}, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/configuration",
		map[string]string{"sid": app.Sid, "skey": app.SKey, "environment": "Nowhere"}, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadEndpoint(t *testing.T) {
	s := newTestServer(t)
	app, dev, _ := s.seed(t)
	fields := map[string]string{"applicationId": uintString(app.ID), "environmentId": uintString(dev.ID)}

	resp, body := s.upload(t, fields, `{"a":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = s.upload(t, fields, `{"a":2}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = s.upload(t, map[string]string{"applicationId": "x"}, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/api/admin/uploads?applicationId="+uintString(app.ID), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var r struct {
		Detail []model.Upload `json:"detail"`
	}
	require.NoError(t, sonic.Unmarshal(body, &r))
	require.Len(t, r.Detail, 1)

	resp, _ = s.do(t, http.MethodDelete, "/api/admin/uploads/"+uintString(r.Detail[0].ID), nil, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, "/api/admin/uploads/"+uintString(r.Detail[0].ID), nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnvironmentEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, dev, prod := s.seed(t)

	resp, body := s.do(t, http.MethodPut, "/api/admin/environments/"+uintString(prod.ID),
		map[string]any{"name": "Production", "isDefault": true}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = s.do(t, http.MethodDelete, "/api/admin/environments/"+uintString(prod.ID), nil, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "default cannot be deleted")

	resp, _ = s.do(t, http.MethodDelete, "/api/admin/environments/"+uintString(dev.ID), nil, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/admin/environments/abc", nil, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeatureSetEndpoint(t *testing.T) {
	s := newTestServer(t)
	app, dev, _ := s.seed(t)

	resp, body := s.do(t, http.MethodPost, "/api/admin/features", map[string]any{
		"key": "beta", "applicationId": app.ID, "environmentId": dev.ID, "value": true,
	}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.do(t, http.MethodPost, "/api/featureset",
		map[string]string{"sid": app.Sid, "skey": app.SKey}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `[{"key":"beta","value":true}]`, string(body))
}

func TestSecretEndpointsHideValues(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/admin/secrets",
		map[string]string{"name": "billing-db", "value": "s3cr3t"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "s3cr3t")

	resp, body = s.do(t, http.MethodGet, "/api/admin/secrets", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "billing-db"))
	assert.NotContains(t, string(body), "s3cr3t")
}

func uintString(v uint64) string {
	return strconv.FormatUint(v, 10)
}
