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

type IApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	Update(ctx context.Context, app *model.Application) error
	// Delete removes the application and its features.
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Application, error)
	GetByName(ctx context.Context, name string) (*model.Application, error)
	// FindByCredentials returns the first unlocked application matching sid and skey.
	FindByCredentials(ctx context.Context, sid, skey string) (*model.Application, error)
	List(ctx context.Context) ([]*model.Application, error)
}

type ApplicationRepo struct {
	db       database.DB
	appModel *model.Application
}

func NewApplicationRepo(db database.DB) IApplicationRepository {
	return &ApplicationRepo{
		db:       db,
		appModel: &model.Application{},
	}
}

func (ar *ApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	err := ar.db.DB().WithContext(ctx).Table(ar.appModel.TableName()).Create(app).Error
	return storeErr("ApplicationRepo.Create", err, app.Name)
}

func (ar *ApplicationRepo) Update(ctx context.Context, app *model.Application) error {
	tx := ar.db.DB().WithContext(ctx).Model(app).
		Select("name", "is_locked", "sid", "skey", "updated_by", "updated_at").
		Updates(app)
	return affected("ApplicationRepo.Update", tx, app.ID)
}

func (ar *ApplicationRepo) Delete(ctx context.Context, id uint64) error {
	return deleteWithFeatures(ctx, ar.db.DB(), "ApplicationRepo.Delete", "application_id", &model.Application{}, id)
}

func (ar *ApplicationRepo) Get(ctx context.Context, id uint64) (*model.Application, error) {
	var app model.Application
	err := ar.db.DB().WithContext(ctx).Table(ar.appModel.TableName()).
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, storeErr("ApplicationRepo.Get", err, id)
	}
	return &app, nil
}

func (ar *ApplicationRepo) GetByName(ctx context.Context, name string) (*model.Application, error) {
	var app model.Application
	err := ar.db.DB().WithContext(ctx).Table(ar.appModel.TableName()).
		Where("name = ?", name).
		First(&app).Error
	if err != nil {
		return nil, storeErr("ApplicationRepo.GetByName", err, name)
	}
	return &app, nil
}

func (ar *ApplicationRepo) FindByCredentials(ctx context.Context, sid, skey string) (*model.Application, error) {
	var app model.Application
	err := database.ReadDB(ar.db.DB().WithContext(ctx)).Table(ar.appModel.TableName()).
		Where("sid = ? AND skey = ? AND is_locked = ?", sid, skey, false).
		Order("id ASC").
		First(&app).Error
	if err != nil {
		return nil, storeErr("ApplicationRepo.FindByCredentials", err)
	}
	return &app, nil
}

func (ar *ApplicationRepo) List(ctx context.Context) ([]*model.Application, error) {
	var apps []*model.Application
	err := ar.db.DB().WithContext(ctx).Table(ar.appModel.TableName()).
		Order("name ASC").
		Find(&apps).Error
	return apps, storeErr("ApplicationRepo.List", err)
}
