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

type ISecretRepository interface {
	Create(ctx context.Context, secret *model.Secret) error
	Update(ctx context.Context, secret *model.Secret) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Secret, error)
	GetByName(ctx context.Context, name string) (*model.Secret, error)
	// List omits the sealed values.
	List(ctx context.Context) ([]*model.Secret, error)
}

type SecretRepo struct {
	db          database.DB
	secretModel *model.Secret
}

func NewSecretRepo(db database.DB) ISecretRepository {
	return &SecretRepo{
		db:          db,
		secretModel: &model.Secret{},
	}
}

func (sr *SecretRepo) Create(ctx context.Context, secret *model.Secret) error {
	err := sr.db.DB().WithContext(ctx).Table(sr.secretModel.TableName()).Create(secret).Error
	return storeErr("SecretRepo.Create", err, secret.Name)
}

// Update writes the sealed value and description; the name is immutable.
func (sr *SecretRepo) Update(ctx context.Context, secret *model.Secret) error {
	tx := sr.db.DB().WithContext(ctx).Model(secret).
		Select("secret_value", "description", "updated_by", "updated_at").
		Updates(secret)
	return affected("SecretRepo.Update", tx, secret.ID)
}

func (sr *SecretRepo) Delete(ctx context.Context, id uint64) error {
	tx := sr.db.DB().WithContext(ctx).Delete(&model.Secret{}, id)
	return affected("SecretRepo.Delete", tx, id)
}

func (sr *SecretRepo) Get(ctx context.Context, id uint64) (*model.Secret, error) {
	var s model.Secret
	err := sr.db.DB().WithContext(ctx).Table(sr.secretModel.TableName()).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, storeErr("SecretRepo.Get", err, id)
	}
	return &s, nil
}

func (sr *SecretRepo) GetByName(ctx context.Context, name string) (*model.Secret, error) {
	var s model.Secret
	err := database.ReadDB(sr.db.DB().WithContext(ctx)).Table(sr.secretModel.TableName()).
		Where("name = ?", name).
		First(&s).Error
	if err != nil {
		return nil, storeErr("SecretRepo.GetByName", err, name)
	}
	return &s, nil
}

func (sr *SecretRepo) List(ctx context.Context) ([]*model.Secret, error) {
	var secrets []*model.Secret
	err := sr.db.DB().WithContext(ctx).Table(sr.secretModel.TableName()).
		Select("id", "name", "description", "created_by", "updated_by", "created_at", "updated_at").
		Order("name ASC").
		Find(&secrets).Error
	return secrets, storeErr("SecretRepo.List", err)
}
