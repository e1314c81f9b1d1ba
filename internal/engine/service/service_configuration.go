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
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/trace"
	"go.opentelemetry.io/otel/attribute"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/01/16
 * @file: service_configuration.go
 * @description: effective configuration for authenticated clients
 */

// KeyValue is one entry of a resolved configuration or feature set.
type KeyValue[T any] struct {
	Key   string `json:"key"`
	Value T      `json:"value"`
}

// scope is the authenticated application plus the environments to merge,
// default first.
type scope struct {
	app  *model.Application
	envs []*model.Environment
}

// resolveScope authenticates sid/skey and picks the environments to merge.
// A named environment equal to the default adds nothing.
func resolveScope(ctx context.Context, op string, appRepo repo.IApplicationRepository, envRepo repo.IEnvironmentRepository, sid, skey, environment string) (*scope, error) {
	app, err := appRepo.FindByCredentials(ctx, sid, skey)
	if err != nil {
		if errs.Kind(err) == errs.ErrNotFound {
			return nil, errs.New(op, errs.ErrAuthentication, "Login failed!")
		}
		return nil, errs.Wrap(op, "", nil, err)
	}

	def, err := envRepo.GetDefault(ctx)
	if err != nil {
		if errs.Kind(err) == errs.ErrNotFound {
			return nil, errs.Wrap(op, app.Sid, errs.ErrMisconfiguration, err, "no default environment")
		}
		return nil, errs.Wrap(op, app.Sid, nil, err)
	}

	s := &scope{app: app, envs: []*model.Environment{def}}
	if environment == "" {
		return s, nil
	}
	named, err := envRepo.GetByName(ctx, environment)
	if err != nil {
		return nil, errs.Wrap(op, app.Sid, nil, err, environment)
	}
	if named.ID != def.ID {
		s.envs = append(s.envs, named)
	}
	return s, nil
}

func sortedPairs[T any](acc map[string]T) []KeyValue[T] {
	out := make([]KeyValue[T], 0, len(acc))
	for k, v := range acc {
		out = append(out, KeyValue[T]{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b KeyValue[T]) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

// ConfigurationService merges the default environment's settings with the
// settings of an optional named environment.
type ConfigurationService struct {
	appRepo     repo.IApplicationRepository
	envRepo     repo.IEnvironmentRepository
	settingRepo repo.ISettingRepository
	secrets     SecretResolver
}

func NewConfigurationService(repos *repo.Repositories, secrets SecretResolver) *ConfigurationService {
	return &ConfigurationService{
		appRepo:     repos.Application,
		envRepo:     repos.Environment,
		settingRepo: repos.Setting,
		secrets:     secrets,
	}
}

// ResolveConfiguration returns the effective configuration, sorted by key.
// Settings of the named environment override the default's. Secret-backed
// values that cannot be resolved fall back to the stored reference.
func (cs *ConfigurationService) ResolveConfiguration(ctx context.Context, sid, skey, environment string) (out []KeyValue[*string], err error) {
	const op = "ConfigurationService.ResolveConfiguration"
	started := time.Now()
	ctx, span := trace.Start(ctx, op, attribute.String("environment", environment))
	defer func() {
		metrics.RecordResolution("configuration", started, err)
		trace.End(span, err)
	}()

	s, err := resolveScope(ctx, op, cs.appRepo, cs.envRepo, sid, skey, environment)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("application.id", int64(s.app.ID)))

	acc := make(map[string]*string)
	for _, env := range s.envs {
		settings, err := cs.settingRepo.ListScope(ctx, s.app.ID, env.ID)
		if err != nil {
			return nil, errs.Wrap(op, s.app.Sid, nil, err, env.Name)
		}
		for _, setting := range settings {
			acc[setting.Key] = cs.value(ctx, s.app, env, setting)
		}
	}

	log.WithContext(ctx).Debugw("configuration resolved", "sid", s.app.Sid, "environment", environment, "keys", len(acc))
	return sortedPairs(acc), nil
}

func (cs *ConfigurationService) value(ctx context.Context, app *model.Application, env *model.Environment, setting *model.Setting) *string {
	if !setting.IsSecret {
		return setting.Value
	}
	if setting.Value == nil || *setting.Value == "" {
		metrics.RecordSecretResolution(metrics.OutcomeFallback)
		log.WithContext(ctx).Warnw("secret setting has no reference, using stored value",
			"key", setting.Key, "environment", env.Name, "sid", app.Sid)
		return setting.Value
	}

	resolved, err := cs.secrets.ResolveByName(ctx, *setting.Value)
	if err != nil {
		metrics.RecordSecretResolution(metrics.OutcomeFallback)
		log.WithContext(ctx).Warnw("secret resolution failed, using stored value",
			"key", setting.Key, "environment", env.Name, "sid", app.Sid, "error", err)
		return setting.Value
	}
	metrics.RecordSecretResolution(metrics.OutcomeSuccess)
	return &resolved
}
