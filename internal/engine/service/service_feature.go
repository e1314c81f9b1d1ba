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
	"strings"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
)

type FeatureService struct {
	appRepo     repo.IApplicationRepository
	envRepo     repo.IEnvironmentRepository
	featureRepo repo.IFeatureRepository
	notifier    notify.Notifier
}

func NewFeatureService(repos *repo.Repositories, notifier notify.Notifier) *FeatureService {
	return &FeatureService{
		appRepo:     repos.Application,
		envRepo:     repos.Environment,
		featureRepo: repos.Feature,
		notifier:    notifier,
	}
}

// AddFeature inserts a flag. (Key, EnvironmentID, ApplicationID) is unique.
func (fs *FeatureService) AddFeature(ctx context.Context, feature *model.Feature) error {
	const op = "FeatureService.AddFeature"
	feature.Key = strings.TrimSpace(feature.Key)
	if err := addable(op, &feature.AuditModel, feature.Key); err != nil {
		return err
	}
	if _, err := fs.appRepo.Get(ctx, feature.ApplicationID); err != nil {
		return errs.Wrap(op, feature.CreatedBy, nil, err, feature.ApplicationID)
	}
	if _, err := fs.envRepo.Get(ctx, feature.EnvironmentID); err != nil {
		return errs.Wrap(op, feature.CreatedBy, nil, err, feature.EnvironmentID)
	}
	if err := fs.featureRepo.Create(ctx, feature); err != nil {
		return errs.Wrap(op, feature.CreatedBy, nil, err, feature.Key)
	}

	publishChange(ctx, fs.notifier, fs.appRepo, notify.KindFeature, feature.Key, feature.ApplicationID, feature.EnvironmentID)
	log.WithContext(ctx).Infow("feature added", "id", feature.ID, "key", feature.Key, "value", feature.Value, "actor", feature.CreatedBy)
	return nil
}

// FeatureUpdate carries the editable fields of a feature.
type FeatureUpdate struct {
	Key     string
	Value   bool
	Enabled bool
	Comment string
}

func (fs *FeatureService) UpdateFeature(ctx context.Context, featureID uint64, in FeatureUpdate, actor string) (*model.Feature, error) {
	const op = "FeatureService.UpdateFeature"
	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	feature, err := fs.featureRepo.Get(ctx, featureID)
	if err != nil {
		return nil, errs.Wrap(op, actor, nil, err, featureID)
	}

	feature.Key = strings.TrimSpace(in.Key)
	feature.Value = in.Value
	feature.Enabled = in.Enabled
	feature.Comment = in.Comment
	feature.Touch(actor)
	if err := updateable(op, &feature.AuditModel, feature.Key); err != nil {
		return nil, err
	}
	if err := fs.featureRepo.Update(ctx, feature); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, featureID)
	}

	publishChange(ctx, fs.notifier, fs.appRepo, notify.KindFeature, feature.Key, feature.ApplicationID, feature.EnvironmentID)
	log.WithContext(ctx).Infow("feature updated", "id", feature.ID, "key", feature.Key, "value", feature.Value, "actor", actor)
	return feature, nil
}

func (fs *FeatureService) DeleteFeature(ctx context.Context, featureID uint64, actor string) error {
	const op = "FeatureService.DeleteFeature"
	if err := requireActor(op, actor); err != nil {
		return err
	}
	feature, err := fs.featureRepo.Get(ctx, featureID)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, featureID)
	}
	if err := fs.featureRepo.Delete(ctx, featureID); err != nil {
		return errs.Wrap(op, actor, nil, err, featureID)
	}
	publishChange(ctx, fs.notifier, fs.appRepo, notify.KindFeature, feature.Key, feature.ApplicationID, feature.EnvironmentID)
	log.WithContext(ctx).Infow("feature deleted", "id", featureID, "key", feature.Key, "actor", actor)
	return nil
}

func (fs *FeatureService) GetFeature(ctx context.Context, featureID uint64) (*model.Feature, error) {
	feature, err := fs.featureRepo.Get(ctx, featureID)
	return feature, errs.Wrap("FeatureService.GetFeature", "", nil, err, featureID)
}

func (fs *FeatureService) ListFeatures(ctx context.Context, applicationID, environmentID uint64) ([]*model.Feature, error) {
	features, err := fs.featureRepo.ListScope(ctx, applicationID, environmentID)
	return features, errs.Wrap("FeatureService.ListFeatures", "", nil, err, applicationID, environmentID)
}
