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

package service

import (
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/pkg/cache"
	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/google/wire"
)

// ProviderSet provides the service layer.
var ProviderSet = wire.NewSet(
	ProvideServices,
)

// ProvideServices builds the services; the upload limit follows the HTTP body limit.
func ProvideServices(
	repos *repo.Repositories,
	c cache.ICache,
	notifier notify.Notifier,
	secretConf *SecretConf,
	httpConf *httpx.Http,
) (*Services, error) {
	return NewServices(repos, c, notifier, secretConf, int64(httpConf.MaxUploadBytes))
}
