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

package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"authentication", errs.Wrap("ResolveConfiguration", "", errs.ErrAuthentication, errors.New("sid abc")), 401, "Login failed!"},
		{"misconfiguration", errs.New("ResolveConfiguration", errs.ErrMisconfiguration, "no default environment"), 503, Misconfigured.Msg},
		{"not found", errs.New("GetUpload", errs.ErrNotFound, "upload 7"), 404, NotFound.Msg},
		{"duplicate", errs.New("UploadFromDocument", errs.ErrDuplicate, "upload exists"), 409, Conflict.Msg},
		{"validation", errs.New("AddEnvironment", errs.ErrValidation, "name required"), 400, BadRequest.Msg},
		{"transaction", errs.Wrap("RollbackUpload", "", errs.ErrTransaction, errors.New("locked")), 500, Failed.Msg},
		{"fiber", fiber.NewError(fiber.StatusUnauthorized, "Invalid token"), 401, "Invalid token"},
		{"unclassified", errors.New("boom"), 500, InternalError.Msg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProblemFor(tt.err)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.title, p.Title)
		})
	}
}

func TestProblemForHidesAuthenticationDetail(t *testing.T) {
	p := ProblemFor(errs.Wrap("ResolveConfiguration", "", errs.ErrAuthentication, errors.New("skey mismatch")))
	assert.Empty(t, p.Detail)
}

func TestProblemForIngestion(t *testing.T) {
	err := errs.Wrap("ApplyUpload", "alice", nil, &errs.IngestionError{
		UploadID:  3,
		Succeeded: 2,
		Failures:  []errs.RowFailure{{Key: "db:host", Err: errs.ErrDuplicate}},
	})
	p := ProblemFor(err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, p.Status)
	assert.Equal(t, "1 of 3 rows failed", p.Detail)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "db:host", p.Errors[0].Key)
}

func TestErrorHandlerWritesProblem(t *testing.T) {
	cfg := &Http{}
	cfg.SetDefaults()
	app := fiber.New(cfg.FiberConfig())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return errs.New("GetApplication", errs.ErrNotFound, "application 9")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, ProblemContentType, resp.Header.Get("Content-Type"))

	body, _ := io.ReadAll(resp.Body)
	var p Problem
	require.NoError(t, sonic.Unmarshal(body, &p))
	assert.Equal(t, "/missing", p.Instance)
	assert.Contains(t, p.Detail, "application 9")
}

func TestHttpSetDefaults(t *testing.T) {
	h := &Http{}
	h.SetDefaults()
	assert.Equal(t, DefaultMaxUploadBytes, h.MaxUploadBytes)
	assert.Equal(t, 8080, h.Port)
	assert.Equal(t, "confhub", h.Auth.Issuer)
	assert.Equal(t, "0.0.0.0:8080", h.Addr())
}
