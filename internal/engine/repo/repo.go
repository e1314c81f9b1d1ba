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
	"errors"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/pkg/database"
	"github.com/go-arcade/confhub/pkg/errs"
	"gorm.io/gorm"
)

// Repositories groups every store the services depend on.
type Repositories struct {
	Application IApplicationRepository
	Environment IEnvironmentRepository
	Upload      IUploadRepository
	Setting     ISettingRepository
	Feature     IFeatureRepository
	Secret      ISecretRepository
}

// NewRepositories builds all repositories over db.
func NewRepositories(db database.DB) *Repositories {
	return &Repositories{
		Application: NewApplicationRepo(db),
		Environment: NewEnvironmentRepo(db),
		Upload:      NewUploadRepo(db),
		Setting:     NewSettingRepo(db),
		Feature:     NewFeatureRepo(db),
		Secret:      NewSecretRepo(db),
	}
}

// Count runs COUNT(*) on tx.
func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// storeErr classifies a gorm error and tags it with op.
func storeErr(op string, err error, args ...any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.Wrap(op, "", errs.ErrNotFound, err, args...)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Wrap(op, "", errs.ErrDuplicate, err, args...)
	default:
		return errs.Wrap(op, "", nil, err, args...)
	}
}

// affected turns a zero-row update or delete into a not-found error.
func affected(op string, tx *gorm.DB, args ...any) error {
	if tx.Error != nil {
		return storeErr(op, tx.Error, args...)
	}
	if tx.RowsAffected == 0 {
		return errs.Wrap(op, "", errs.ErrNotFound, gorm.ErrRecordNotFound, args...)
	}
	return nil
}

// deleteWithFeatures removes the row id of parent together with every feature
// whose column matches id, in one transaction.
func deleteWithFeatures(ctx context.Context, db *gorm.DB, op, column string, parent any, id uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(column+" = ?", id).Delete(&model.Feature{}).Error; err != nil {
			return err
		}
		res := tx.Delete(parent, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return storeErr(op, err, id)
}
