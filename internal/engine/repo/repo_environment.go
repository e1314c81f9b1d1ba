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
	"time"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/pkg/database"
)

type IEnvironmentRepository interface {
	Create(ctx context.Context, env *model.Environment) error
	Update(ctx context.Context, env *model.Environment) error
	// Delete removes the environment and its features.
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Environment, error)
	GetByName(ctx context.Context, name string) (*model.Environment, error)
	// GetDefault returns the environment flagged as default.
	GetDefault(ctx context.Context) (*model.Environment, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*model.Environment, error)
	// ClearDefault drops the default flag from whichever row holds it. No-op when none does.
	ClearDefault(ctx context.Context, actor string) error
}

type EnvironmentRepo struct {
	db       database.DB
	envModel *model.Environment
}

func NewEnvironmentRepo(db database.DB) IEnvironmentRepository {
	return &EnvironmentRepo{
		db:       db,
		envModel: &model.Environment{},
	}
}

func (er *EnvironmentRepo) Create(ctx context.Context, env *model.Environment) error {
	err := er.db.DB().WithContext(ctx).Table(er.envModel.TableName()).Create(env).Error
	return storeErr("EnvironmentRepo.Create", err, env.Name)
}

func (er *EnvironmentRepo) Update(ctx context.Context, env *model.Environment) error {
	tx := er.db.DB().WithContext(ctx).Model(env).
		Select("name", "is_default", "updated_by", "updated_at").
		Updates(env)
	return affected("EnvironmentRepo.Update", tx, env.ID)
}

func (er *EnvironmentRepo) Delete(ctx context.Context, id uint64) error {
	return deleteWithFeatures(ctx, er.db.DB(), "EnvironmentRepo.Delete", "environment_id", &model.Environment{}, id)
}

func (er *EnvironmentRepo) Get(ctx context.Context, id uint64) (*model.Environment, error) {
	var env model.Environment
	err := er.db.DB().WithContext(ctx).Table(er.envModel.TableName()).
		Where("id = ?", id).
		First(&env).Error
	if err != nil {
		return nil, storeErr("EnvironmentRepo.Get", err, id)
	}
	return &env, nil
}

func (er *EnvironmentRepo) GetByName(ctx context.Context, name string) (*model.Environment, error) {
	var env model.Environment
	err := database.ReadDB(er.db.DB().WithContext(ctx)).Table(er.envModel.TableName()).
		Where("name = ?", name).
		First(&env).Error
	if err != nil {
		return nil, storeErr("EnvironmentRepo.GetByName", err, name)
	}
	return &env, nil
}

func (er *EnvironmentRepo) GetDefault(ctx context.Context) (*model.Environment, error) {
	var env model.Environment
	err := database.ReadDB(er.db.DB().WithContext(ctx)).Table(er.envModel.TableName()).
		Where("is_default = ?", true).
		Order("id ASC").
		First(&env).Error
	if err != nil {
		return nil, storeErr("EnvironmentRepo.GetDefault", err)
	}
	return &env, nil
}

func (er *EnvironmentRepo) Count(ctx context.Context) (int64, error) {
	n, err := Count(er.db.DB().WithContext(ctx).Table(er.envModel.TableName()))
	return n, storeErr("EnvironmentRepo.Count", err)
}

func (er *EnvironmentRepo) List(ctx context.Context) ([]*model.Environment, error) {
	var envs []*model.Environment
	err := er.db.DB().WithContext(ctx).Table(er.envModel.TableName()).
		Order("name ASC").
		Find(&envs).Error
	return envs, storeErr("EnvironmentRepo.List", err)
}

func (er *EnvironmentRepo) ClearDefault(ctx context.Context, actor string) error {
	err := er.db.DB().WithContext(ctx).Table(er.envModel.TableName()).
		Where("is_default = ?", true).
		Updates(map[string]any{
			"is_default": false,
			"updated_by": actor,
			"updated_at": time.Now(),
		}).Error
	return storeErr("EnvironmentRepo.ClearDefault", err, actor)
}
