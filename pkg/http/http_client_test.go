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
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfiguration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"skey":"good"`) {
			w.Header().Set("Content-Type", ProblemContentType)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":401,"title":"Login failed!"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"key":"db:host","value":"x"},{"key":"db:user","value":null}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)

	kv, err := c.Configuration(context.Background(), Credentials{Sid: "s", SKey: "good"})
	require.NoError(t, err)
	require.Len(t, kv, 2)
	assert.Equal(t, "db:host", kv[0].Key)
	require.NotNil(t, kv[0].Value)
	assert.Equal(t, "x", *kv[0].Value)
	assert.Nil(t, kv[1].Value)

	_, err = c.Configuration(context.Background(), Credentials{Sid: "s", SKey: "bad"})
	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 401, ce.Status)
	assert.Equal(t, "401 Login failed!", ce.Error())
}
