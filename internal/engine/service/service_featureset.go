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
	"time"

	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/trace"
	"go.opentelemetry.io/otel/attribute"
)

// FeatureSetService resolves feature flags with the same override rules as
// configuration. Enabled is not consulted.
type FeatureSetService struct {
	appRepo     repo.IApplicationRepository
	envRepo     repo.IEnvironmentRepository
	featureRepo repo.IFeatureRepository
}

func NewFeatureSetService(repos *repo.Repositories) *FeatureSetService {
	return &FeatureSetService{
		appRepo:     repos.Application,
		envRepo:     repos.Environment,
		featureRepo: repos.Feature,
	}
}

func (fs *FeatureSetService) ResolveFeatureSet(ctx context.Context, sid, skey, environment string) (out []KeyValue[bool], err error) {
	const op = "FeatureSetService.ResolveFeatureSet"
	started := time.Now()
	ctx, span := trace.Start(ctx, op, attribute.String("environment", environment))
	defer func() {
		metrics.RecordResolution("featureset", started, err)
		trace.End(span, err)
	}()

	s, err := resolveScope(ctx, op, fs.appRepo, fs.envRepo, sid, skey, environment)
	if err != nil {
		return nil, err
	}

	acc := make(map[string]bool)
	for _, env := range s.envs {
		features, err := fs.featureRepo.ListScope(ctx, s.app.ID, env.ID)
		if err != nil {
			return nil, errs.Wrap(op, s.app.Sid, nil, err, env.Name)
		}
		for _, f := range features {
			acc[f.Key] = f.Value
		}
	}

	log.WithContext(ctx).Debugw("feature set resolved", "sid", s.app.Sid, "environment", environment, "keys", len(acc))
	return sortedPairs(acc), nil
}
