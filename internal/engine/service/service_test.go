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
	"context"
	"sync"
	"testing"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/internal/pkg/testutil"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []notify.ChangeEvent
}

func (r *recorder) Publish(_ context.Context, ev notify.ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Events() []notify.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.ChangeEvent(nil), r.events...)
}

// secretMap resolves names from a fixed map.
type secretMap map[string]string

func (m secretMap) ResolveByName(_ context.Context, name string) (string, error) {
	v, ok := m[name]
	if !ok {
		return "", errs.New("secretMap.ResolveByName", errs.ErrNotFound, "secret %q", name)
	}
	return v, nil
}

type fixture struct {
	ctx      context.Context
	repos    *repo.Repositories
	notifier *recorder
	envs     *EnvironmentService
	apps     *ApplicationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := repo.NewRepositories(testutil.NewTestDB(t))
	return &fixture{
		ctx:      context.Background(),
		repos:    repos,
		notifier: &recorder{},
		envs:     NewEnvironmentService(repos.Environment, repos.Upload),
		apps:     NewApplicationService(repos.Application, repos.Upload),
	}
}

func (f *fixture) addEnv(t *testing.T, name string, isDefault bool) *model.Environment {
	t.Helper()
	env := &model.Environment{Name: name, IsDefault: isDefault}
	env.Stamp("tester")
	require.NoError(t, f.envs.AddEnvironment(f.ctx, env))
	return env
}

func (f *fixture) addApp(t *testing.T, name string) *model.Application {
	t.Helper()
	app, err := f.apps.CreateApplication(f.ctx, name, "tester")
	require.NoError(t, err)
	return app
}

func (f *fixture) addSetting(t *testing.T, app *model.Application, env *model.Environment, key string, value *string, secret bool) *model.Setting {
	t.Helper()
	s := &model.Setting{
		UploadID:      1,
		Key:           key,
		ApplicationID: app.ID,
		EnvironmentID: env.ID,
		Value:         value,
		IsSecret:      secret,
	}
	s.Stamp("tester")
	require.NoError(t, f.repos.Setting.Create(f.ctx, s))
	return s
}

func (f *fixture) addFeature(t *testing.T, app *model.Application, env *model.Environment, key string, value, enabled bool) *model.Feature {
	t.Helper()
	feature := &model.Feature{
		Key:           key,
		ApplicationID: app.ID,
		EnvironmentID: env.ID,
		Value:         value,
		Enabled:       enabled,
	}
	feature.Stamp("tester")
	require.NoError(t, f.repos.Feature.Create(f.ctx, feature))
	return feature
}

func (f *fixture) defaults(t *testing.T) []string {
	t.Helper()
	envs, err := f.envs.ListEnvironments(f.ctx)
	require.NoError(t, err)
	var names []string
	for _, e := range envs {
		if e.IsDefault {
			names = append(names, e.Name)
		}
	}
	return names
}
