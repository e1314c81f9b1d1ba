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
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/internal/pkg/flatten"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/trace"
	"go.opentelemetry.io/otel/attribute"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/01/15
 * @file: service_upload.go
 * @description: upload ingestion
 */

// UploadService turns uploaded JSON documents into settings rows.
type UploadService struct {
	appRepo     repo.IApplicationRepository
	envRepo     repo.IEnvironmentRepository
	uploadRepo  repo.IUploadRepository
	settingRepo repo.ISettingRepository
	notifier    notify.Notifier
	maxBytes    int64
}

func NewUploadService(repos *repo.Repositories, notifier notify.Notifier, maxBytes int64) *UploadService {
	return &UploadService{
		appRepo:     repos.Application,
		envRepo:     repos.Environment,
		uploadRepo:  repos.Upload,
		settingRepo: repos.Setting,
		notifier:    notifier,
		maxBytes:    maxBytes,
	}
}

// UploadFromDocument stores the raw document for the application and the
// optional environment. A second upload for the same pair is a duplicate.
func (us *UploadService) UploadFromDocument(ctx context.Context, r io.Reader, applicationID uint64, environmentID *uint64, fileName, actor string) (upload *model.Upload, err error) {
	const op = "UploadService.UploadFromDocument"
	ctx, span := trace.Start(ctx, op, attribute.Int64("application.id", int64(applicationID)))
	defer func() { trace.End(span, err) }()

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	if fileName == "" {
		return nil, errs.New(op, errs.ErrValidation, "file name is required")
	}

	src := r
	if us.maxBytes > 0 {
		src = io.LimitReader(r, us.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errs.Wrap(op, actor, errs.ErrValidation, err, fileName)
	}
	if us.maxBytes > 0 && int64(len(data)) > us.maxBytes {
		return nil, errs.New(op, errs.ErrValidation, "%s exceeds %d bytes", fileName, us.maxBytes)
	}
	if !utf8.Valid(data) {
		return nil, errs.New(op, errs.ErrValidation, "%s is not valid UTF-8", fileName)
	}

	if _, err := us.appRepo.Get(ctx, applicationID); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, applicationID)
	}
	if environmentID != nil {
		if _, err := us.envRepo.Get(ctx, *environmentID); err != nil {
			return nil, errs.Wrap(op, actor, nil, err, *environmentID)
		}
	}

	upload = &model.Upload{
		FileName:      fileName,
		ApplicationID: applicationID,
		EnvironmentID: environmentID,
		Json:          string(data),
		Size:          int64(len(data)),
	}
	upload.Stamp(actor)
	if err := us.uploadRepo.Create(ctx, upload); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, applicationID, upload.EnvironmentKey())
	}

	log.WithContext(ctx).Infow("upload stored", "id", upload.ID, "file", fileName, "size", upload.Size,
		"application", applicationID, "environment", upload.EnvironmentKey(), "actor", actor)
	return upload, nil
}

// ApplyUpload writes one setting per flattened key of the upload's document.
// Every row is attempted; rows that succeed stay even when others fail, and
// the failures come back together as an *errs.IngestionError.
func (us *UploadService) ApplyUpload(ctx context.Context, upload *model.Upload, actor string) (count int, err error) {
	const op = "UploadService.ApplyUpload"
	ctx, span := trace.Start(ctx, op, attribute.Int64("upload.id", int64(upload.ID)))
	defer func() {
		span.SetAttributes(attribute.Int("settings.created", count))
		trace.End(span, err)
	}()

	if err := requireActor(op, actor); err != nil {
		return 0, err
	}
	pairs, err := flatten.Parse([]byte(upload.Json))
	if err != nil {
		return 0, errs.Wrap(op, actor, errs.ErrValidation, err, upload.ID)
	}

	ingestErr := &errs.IngestionError{UploadID: upload.ID}
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			metrics.RecordUploadRows(count, len(ingestErr.Failures))
			stopped := fmt.Errorf("stopped after %d of %d rows: %w", count, len(pairs), err)
			if len(ingestErr.Failures) > 0 {
				ingestErr.Succeeded = count
				stopped = errors.Join(stopped, ingestErr)
			}
			return count, errs.Wrap(op, actor, nil, stopped, upload.ID)
		}
		setting := &model.Setting{
			UploadID:      upload.ID,
			Key:           p.Key,
			EnvironmentID: upload.EnvironmentKey(),
			ApplicationID: upload.ApplicationID,
			Value:         p.Value,
		}
		setting.Stamp(actor)
		if err := us.settingRepo.Create(ctx, setting); err != nil {
			ingestErr.Failures = append(ingestErr.Failures, errs.RowFailure{Key: p.Key, Err: err})
			continue
		}
		count++
	}
	ingestErr.Succeeded = count
	metrics.RecordUploadRows(count, len(ingestErr.Failures))

	if count > 0 {
		us.publish(ctx, notify.KindUpload, upload)
	}
	if len(ingestErr.Failures) > 0 {
		log.WithContext(ctx).Warnw("upload partially applied", "upload", upload.ID, "created", count, "failed", len(ingestErr.Failures))
		return count, errs.Wrap(op, actor, nil, ingestErr, upload.ID)
	}

	log.WithContext(ctx).Infow("upload applied", "upload", upload.ID, "created", count, "actor", actor)
	return count, nil
}

// Ingest stores a document and applies it. The upload is returned even when
// some rows failed.
func (us *UploadService) Ingest(ctx context.Context, r io.Reader, applicationID uint64, environmentID *uint64, fileName, actor string) (*model.Upload, int, error) {
	upload, err := us.UploadFromDocument(ctx, r, applicationID, environmentID, fileName, actor)
	if err != nil {
		return nil, 0, err
	}
	count, err := us.ApplyUpload(ctx, upload, actor)
	return upload, count, err
}

// RollbackUpload deletes the upload and all of its settings in one transaction.
func (us *UploadService) RollbackUpload(ctx context.Context, uploadID uint64, actor string) (err error) {
	const op = "UploadService.RollbackUpload"
	ctx, span := trace.Start(ctx, op, attribute.Int64("upload.id", int64(uploadID)))
	defer func() { trace.End(span, err) }()

	if err := requireActor(op, actor); err != nil {
		return err
	}
	upload, err := us.uploadRepo.Get(ctx, uploadID)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, uploadID)
	}

	err = us.uploadRepo.Rollback(ctx, uploadID)
	metrics.RecordRollback(err)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, uploadID)
	}

	us.publish(ctx, notify.KindRollback, upload)
	log.WithContext(ctx).Infow("upload rolled back", "upload", uploadID, "file", upload.FileName, "actor", actor)
	return nil
}

func (us *UploadService) GetUpload(ctx context.Context, id uint64) (*model.Upload, error) {
	upload, err := us.uploadRepo.Get(ctx, id)
	return upload, errs.Wrap("UploadService.GetUpload", "", nil, err, id)
}

// ListUploads lists uploads without their documents; applicationID 0 lists all.
func (us *UploadService) ListUploads(ctx context.Context, applicationID uint64) ([]*model.Upload, error) {
	uploads, err := us.uploadRepo.List(ctx, applicationID)
	return uploads, errs.Wrap("UploadService.ListUploads", "", nil, err, applicationID)
}

func (us *UploadService) publish(ctx context.Context, kind notify.ChangeKind, upload *model.Upload) {
	publishChange(ctx, us.notifier, us.appRepo, kind, upload.FileName, upload.ApplicationID, upload.EnvironmentKey())
}
