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
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/id"
	"github.com/go-arcade/confhub/pkg/log"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/01/16
 * @file: service_application.go
 * @description: application registration and credentials
 */

type ApplicationService struct {
	appRepo    repo.IApplicationRepository
	uploadRepo repo.IUploadRepository
}

func NewApplicationService(appRepo repo.IApplicationRepository, uploadRepo repo.IUploadRepository) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, uploadRepo: uploadRepo}
}

// CreateApplication registers name and issues a fresh Sid/SKey pair.
func (as *ApplicationService) CreateApplication(ctx context.Context, name, actor string) (*model.Application, error) {
	const op = "ApplicationService.CreateApplication"
	app := &model.Application{Name: strings.TrimSpace(name)}
	app.Stamp(actor)
	if err := addable(op, &app.AuditModel, app.Name); err != nil {
		return nil, err
	}

	if _, err := as.appRepo.GetByName(ctx, app.Name); err == nil {
		return nil, errs.New(op, errs.ErrDuplicate, "application %q already exists", app.Name)
	} else if errs.Kind(err) != errs.ErrNotFound {
		return nil, errs.Wrap(op, actor, nil, err, app.Name)
	}

	var err error
	if app.Sid, err = id.NewCredential(); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, app.Name)
	}
	if app.SKey, err = id.NewCredential(); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, app.Name)
	}
	if err := as.appRepo.Create(ctx, app); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, app.Name)
	}

	log.WithContext(ctx).Infow("application created", "id", app.ID, "name", app.Name, "sid", app.Sid, "actor", actor)
	return app, nil
}

// UpdateApplication renames or locks an application. Credentials are left alone.
func (as *ApplicationService) UpdateApplication(ctx context.Context, appID uint64, name string, locked bool, actor string) (*model.Application, error) {
	const op = "ApplicationService.UpdateApplication"
	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	app, err := as.appRepo.Get(ctx, appID)
	if err != nil {
		return nil, errs.Wrap(op, actor, nil, err, appID)
	}

	name = strings.TrimSpace(name)
	if name != app.Name {
		if other, err := as.appRepo.GetByName(ctx, name); err == nil && other.ID != app.ID {
			return nil, errs.New(op, errs.ErrDuplicate, "application %q already exists", name)
		}
	}
	app.Name = name
	app.IsLocked = locked
	app.Touch(actor)
	if err := updateable(op, &app.AuditModel, app.Name); err != nil {
		return nil, err
	}
	if err := as.appRepo.Update(ctx, app); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, appID)
	}

	log.WithContext(ctx).Infow("application updated", "id", app.ID, "name", app.Name, "locked", locked, "actor", actor)
	return app, nil
}

// RegenerateKeys replaces the SKey. The Sid is kept so clients only rotate one value.
func (as *ApplicationService) RegenerateKeys(ctx context.Context, appID uint64, actor string) (*model.Application, error) {
	const op = "ApplicationService.RegenerateKeys"
	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	app, err := as.appRepo.Get(ctx, appID)
	if err != nil {
		return nil, errs.Wrap(op, actor, nil, err, appID)
	}
	if app.SKey, err = id.NewCredential(); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, appID)
	}
	app.Touch(actor)
	if err := as.appRepo.Update(ctx, app); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, appID)
	}

	log.WithContext(ctx).Infow("application key regenerated", "id", app.ID, "sid", app.Sid, "actor", actor)
	return app, nil
}

// DeleteApplication removes an application that owns no uploads, along with its features.
func (as *ApplicationService) DeleteApplication(ctx context.Context, appID uint64, actor string) error {
	const op = "ApplicationService.DeleteApplication"
	if err := requireActor(op, actor); err != nil {
		return err
	}
	n, err := as.uploadRepo.CountByApplication(ctx, appID)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, appID)
	}
	if n > 0 {
		return errs.New(op, errs.ErrValidation, "application %d still has %d upload(s), roll them back first", appID, n)
	}
	if err := as.appRepo.Delete(ctx, appID); err != nil {
		return errs.Wrap(op, actor, nil, err, appID)
	}
	log.WithContext(ctx).Infow("application deleted", "id", appID, "actor", actor)
	return nil
}

func (as *ApplicationService) GetApplication(ctx context.Context, appID uint64) (*model.Application, error) {
	app, err := as.appRepo.Get(ctx, appID)
	return app, errs.Wrap("ApplicationService.GetApplication", "", nil, err, appID)
}

func (as *ApplicationService) ListApplications(ctx context.Context) ([]*model.Application, error) {
	apps, err := as.appRepo.List(ctx)
	return apps, errs.Wrap("ApplicationService.ListApplications", "", nil, err)
}
