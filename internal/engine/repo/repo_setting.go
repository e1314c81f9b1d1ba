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
	"gorm.io/gorm/clause"
)

type ISettingRepository interface {
	Create(ctx context.Context, setting *model.Setting) error
	Update(ctx context.Context, setting *model.Setting) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Setting, error)
	// ListScope returns the settings of one application in one environment, ordered by key.
	ListScope(ctx context.Context, applicationID, environmentID uint64) ([]*model.Setting, error)
	ListByUpload(ctx context.Context, uploadID uint64) ([]*model.Setting, error)
}

type SettingRepo struct {
	db           database.DB
	settingModel *model.Setting
}

func NewSettingRepo(db database.DB) ISettingRepository {
	return &SettingRepo{
		db:           db,
		settingModel: &model.Setting{},
	}
}

// orderByKey quotes the column, key is reserved in MySQL.
var orderByKey = clause.OrderByColumn{Column: clause.Column{Name: "key"}}

func (sr *SettingRepo) Create(ctx context.Context, setting *model.Setting) error {
	err := sr.db.DB().WithContext(ctx).Table(sr.settingModel.TableName()).Create(setting).Error
	return storeErr("SettingRepo.Create", err, setting.Key)
}

func (sr *SettingRepo) Update(ctx context.Context, setting *model.Setting) error {
	tx := sr.db.DB().WithContext(ctx).Model(setting).
		Select("value", "comment", "is_secret", "updated_by", "updated_at").
		Updates(setting)
	return affected("SettingRepo.Update", tx, setting.ID)
}

func (sr *SettingRepo) Delete(ctx context.Context, id uint64) error {
	tx := sr.db.DB().WithContext(ctx).Delete(&model.Setting{}, id)
	return affected("SettingRepo.Delete", tx, id)
}

func (sr *SettingRepo) Get(ctx context.Context, id uint64) (*model.Setting, error) {
	var setting model.Setting
	err := sr.db.DB().WithContext(ctx).Table(sr.settingModel.TableName()).
		Where("id = ?", id).
		First(&setting).Error
	if err != nil {
		return nil, storeErr("SettingRepo.Get", err, id)
	}
	return &setting, nil
}

func (sr *SettingRepo) ListScope(ctx context.Context, applicationID, environmentID uint64) ([]*model.Setting, error) {
	var settings []*model.Setting
	err := database.ReadDB(sr.db.DB().WithContext(ctx)).Table(sr.settingModel.TableName()).
		Where("application_id = ? AND environment_id = ?", applicationID, environmentID).
		Order(orderByKey).
		Find(&settings).Error
	return settings, storeErr("SettingRepo.ListScope", err, applicationID, environmentID)
}

func (sr *SettingRepo) ListByUpload(ctx context.Context, uploadID uint64) ([]*model.Setting, error) {
	var settings []*model.Setting
	err := sr.db.DB().WithContext(ctx).Table(sr.settingModel.TableName()).
		Where("upload_id = ?", uploadID).
		Order(orderByKey).
		Find(&settings).Error
	return settings, storeErr("SettingRepo.ListByUpload", err, uploadID)
}
