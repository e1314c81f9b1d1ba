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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-arcade/confhub/pkg/cache"
	"github.com/go-arcade/confhub/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[log]
output = "stdout"
level = "DEBUG"

[http]
port = 8181
exposeMetrics = true

[http.auth]
secretKey = "from-file"

[database]
type = "sqlite"
autoMigrate = true

[cache]
mode = "local"

[secret]
cacheTTL = "90s"

[notify]
channel = "confhub:test"

[[notify.webhooks]]
url = "http://127.0.0.1:9/hook"
timeout = 3
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("CONFHUB_SECRET_MASTERKEY", "from-env")
	conf, err := NewLoader(writeConfig(t, sampleConfig)).Load()
	require.NoError(t, err)

	assert.Equal(t, 8181, conf.Http.Port)
	assert.True(t, conf.Http.ExposeMetrics)
	assert.Equal(t, "from-file", conf.Http.Auth.SecretKey)
	assert.Equal(t, "DEBUG", conf.Log.Level)
	assert.Equal(t, database.TypeSQLite, conf.Database.Type)
	assert.Equal(t, "confhub.db", conf.Database.SQLite.Path, "defaulted")
	assert.True(t, conf.Database.AutoMigrate)
	assert.Equal(t, cache.ModeLocal, conf.Cache.Mode)
	assert.Equal(t, 90*time.Second, conf.Secret.CacheTTL)
	assert.Equal(t, "from-env", conf.Secret.MasterKey)
	assert.Equal(t, "confhub:test", conf.Notify.Channel)
	require.Len(t, conf.Notify.Webhooks, 1)
	assert.Equal(t, 3, conf.Notify.Webhooks[0].Timeout)
	assert.Equal(t, "confhub", conf.Trace.ServiceName)
	assert.Equal(t, 9090, conf.Metrics.Port)

	require.NoError(t, conf.Validate())
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	envFile := filepath.Join(filepath.Dir(path), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CONFHUB_SECRET_MASTERKEY=dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CONFHUB_SECRET_MASTERKEY") })

	conf, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv", conf.Secret.MasterKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.toml")).Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	conf := &AppConfig{}
	conf.SetDefaults()
	assert.ErrorContains(t, conf.Validate(), "secret.masterKey")

	conf.Secret.MasterKey = "k"
	assert.ErrorContains(t, conf.Validate(), "http.auth.secretKey")

	conf.Http.Auth.SecretKey = "s"
	assert.NoError(t, conf.Validate())
}
