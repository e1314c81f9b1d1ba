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

type IUploadRepository interface {
	// Create rejects the upload with ErrDuplicate when one already exists for
	// the same application and environment.
	Create(ctx context.Context, upload *model.Upload) error
	Get(ctx context.Context, id uint64) (*model.Upload, error)
	// List returns uploads without their JSON body, optionally filtered by application.
	List(ctx context.Context, applicationID uint64) ([]*model.Upload, error)
	CountByEnvironment(ctx context.Context, environmentID uint64) (int64, error)
	CountByApplication(ctx context.Context, applicationID uint64) (int64, error)
	// Rollback deletes the upload and every setting referencing it in one transaction.
	Rollback(ctx context.Context, id uint64) error
}

type UploadRepo struct {
	db          database.DB
	uploadModel *model.Upload
}

func NewUploadRepo(db database.DB) IUploadRepository {
	return &UploadRepo{
		db:          db,
		uploadModel: &model.Upload{},
	}
}

func scopeEnvironment(tx *gorm.DB, environmentID *uint64) *gorm.DB {
	if environmentID == nil {
		return tx.Where("environment_id IS NULL")
	}
	return tx.Where("environment_id = ?", *environmentID)
}

func (ur *UploadRepo) Create(ctx context.Context, upload *model.Upload) error {
	return ur.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Table(ur.uploadModel.TableName()).Where("application_id = ?", upload.ApplicationID)
		n, err := Count(scopeEnvironment(q, upload.EnvironmentID))
		if err != nil {
			return storeErr("UploadRepo.Create", err)
		}
		if n > 0 {
			return errs.New("UploadRepo.Create", errs.ErrDuplicate,
				"an upload already exists for application %d and environment %d",
				upload.ApplicationID, upload.EnvironmentKey())
		}
		return storeErr("UploadRepo.Create", tx.Table(ur.uploadModel.TableName()).Create(upload).Error, upload.FileName)
	})
}

func (ur *UploadRepo) Get(ctx context.Context, id uint64) (*model.Upload, error) {
	var upload model.Upload
	// uploads are usually read right after they are stored
	err := database.WriteDB(ur.db.DB().WithContext(ctx)).Table(ur.uploadModel.TableName()).
		Where("id = ?", id).
		First(&upload).Error
	if err != nil {
		return nil, storeErr("UploadRepo.Get", err, id)
	}
	return &upload, nil
}

func (ur *UploadRepo) List(ctx context.Context, applicationID uint64) ([]*model.Upload, error) {
	var uploads []*model.Upload
	query := ur.db.DB().WithContext(ctx).Table(ur.uploadModel.TableName())
	if applicationID != 0 {
		query = query.Where("application_id = ?", applicationID)
	}
	err := query.
		Select("id", "file_name", "application_id", "environment_id", "size",
			"created_by", "updated_by", "created_at", "updated_at").
		Order("id DESC").
		Find(&uploads).Error
	return uploads, storeErr("UploadRepo.List", err)
}

func (ur *UploadRepo) CountByEnvironment(ctx context.Context, environmentID uint64) (int64, error) {
	n, err := Count(ur.db.DB().WithContext(ctx).Table(ur.uploadModel.TableName()).
		Where("environment_id = ?", environmentID))
	return n, storeErr("UploadRepo.CountByEnvironment", err, environmentID)
}

func (ur *UploadRepo) CountByApplication(ctx context.Context, applicationID uint64) (int64, error) {
	n, err := Count(ur.db.DB().WithContext(ctx).Table(ur.uploadModel.TableName()).
		Where("application_id = ?", applicationID))
	return n, storeErr("UploadRepo.CountByApplication", err, applicationID)
}

func (ur *UploadRepo) Rollback(ctx context.Context, id uint64) error {
	err := ur.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("upload_id = ?", id).Delete(&model.Setting{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Upload{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.Wrap("UploadRepo.Rollback", "", errs.ErrNotFound, err, id)
	default:
		return errs.Wrap("UploadRepo.Rollback", "", errs.ErrTransaction, err, id)
	}
}
