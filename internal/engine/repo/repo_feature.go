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

package repo

import (
	"context"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/pkg/database"
)

type IFeatureRepository interface {
	Create(ctx context.Context, feature *model.Feature) error
	Update(ctx context.Context, feature *model.Feature) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Feature, error)
	ListScope(ctx context.Context, applicationID, environmentID uint64) ([]*model.Feature, error)
}

type FeatureRepo struct {
	db           database.DB
	featureModel *model.Feature
}

func NewFeatureRepo(db database.DB) IFeatureRepository {
	return &FeatureRepo{
		db:           db,
		featureModel: &model.Feature{},
	}
}

func (fr *FeatureRepo) Create(ctx context.Context, feature *model.Feature) error {
	err := fr.db.DB().WithContext(ctx).Table(fr.featureModel.TableName()).Create(feature).Error
	return storeErr("FeatureRepo.Create", err, feature.Key)
}

func (fr *FeatureRepo) Update(ctx context.Context, feature *model.Feature) error {
	tx := fr.db.DB().WithContext(ctx).Model(feature).
		Select("key", "value", "enabled", "comment", "updated_by", "updated_at").
		Updates(feature)
	return affected("FeatureRepo.Update", tx, feature.ID)
}

func (fr *FeatureRepo) Delete(ctx context.Context, id uint64) error {
	tx := fr.db.DB().WithContext(ctx).Delete(&model.Feature{}, id)
	return affected("FeatureRepo.Delete", tx, id)
}

func (fr *FeatureRepo) Get(ctx context.Context, id uint64) (*model.Feature, error) {
	var feature model.Feature
	err := fr.db.DB().WithContext(ctx).Table(fr.featureModel.TableName()).
		Where("id = ?", id).
		First(&feature).Error
	if err != nil {
		return nil, storeErr("FeatureRepo.Get", err, id)
	}
	return &feature, nil
}

func (fr *FeatureRepo) ListScope(ctx context.Context, applicationID, environmentID uint64) ([]*model.Feature, error) {
	var features []*model.Feature
	err := database.ReadDB(fr.db.DB().WithContext(ctx)).Table(fr.featureModel.TableName()).
		Where("application_id = ? AND environment_id = ?", applicationID, environmentID).
		Order(orderByKey).
		Find(&features).Error
	return features, storeErr("FeatureRepo.ListScope", err, applicationID, environmentID)
}
