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
)

// Services groups every service the router and bootstrap need.
type Services struct {
	Application   *ApplicationService
	Environment   *EnvironmentService
	Upload        *UploadService
	Setting       *SettingService
	Feature       *FeatureService
	Secret        *SecretService
	Configuration *ConfigurationService
	FeatureSet    *FeatureSetService
}

// NewServices builds all services over repos. The configuration resolver
// reads secrets through the secret service.
func NewServices(
	repos *repo.Repositories,
	c cache.ICache,
	notifier notify.Notifier,
	secretConf *SecretConf,
	maxUploadBytes int64,
) (*Services, error) {
	secretService, err := NewSecretService(secretConf, repos.Secret, c)
	if err != nil {
		return nil, err
	}

	return &Services{
		Application:   NewApplicationService(repos.Application, repos.Upload),
		Environment:   NewEnvironmentService(repos.Environment, repos.Upload),
		Upload:        NewUploadService(repos, notifier, maxUploadBytes),
		Setting:       NewSettingService(repos, notifier),
		Feature:       NewFeatureService(repos, notifier),
		Secret:        secretService,
		Configuration: NewConfigurationService(repos, secretService),
		FeatureSet:    NewFeatureSetService(repos),
	}, nil
}
