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

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/internal/pkg/notify"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
)

// SettingService edits individual settings after ingestion.
type SettingService struct {
	appRepo     repo.IApplicationRepository
	settingRepo repo.ISettingRepository
	notifier    notify.Notifier
}

func NewSettingService(repos *repo.Repositories, notifier notify.Notifier) *SettingService {
	return &SettingService{
		appRepo:     repos.Application,
		settingRepo: repos.Setting,
		notifier:    notifier,
	}
}

// SettingUpdate carries the editable fields of a setting.
type SettingUpdate struct {
	Value    *string
	Comment  string
	IsSecret bool
}

// UpdateSetting applies in to the setting. A setting stored with a null value
// marks a structural node and keeps its null value; its comment and secret
// flag still change.
func (ss *SettingService) UpdateSetting(ctx context.Context, settingID uint64, in SettingUpdate, actor string) (*model.Setting, error) {
	const op = "SettingService.UpdateSetting"
	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	setting, err := ss.settingRepo.Get(ctx, settingID)
	if err != nil {
		return nil, errs.Wrap(op, actor, nil, err, settingID)
	}

	if setting.Value != nil {
		setting.Value = in.Value
	}
	setting.Comment = in.Comment
	setting.IsSecret = in.IsSecret
	setting.Touch(actor)
	if err := ss.settingRepo.Update(ctx, setting); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, settingID)
	}

	publishChange(ctx, ss.notifier, ss.appRepo, notify.KindSetting, setting.Key, setting.ApplicationID, setting.EnvironmentID)
	log.WithContext(ctx).Infow("setting updated", "id", setting.ID, "key", setting.Key, "secret", setting.IsSecret, "actor", actor)
	return setting, nil
}

func (ss *SettingService) DeleteSetting(ctx context.Context, settingID uint64, actor string) error {
	const op = "SettingService.DeleteSetting"
	if err := requireActor(op, actor); err != nil {
		return err
	}
	setting, err := ss.settingRepo.Get(ctx, settingID)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, settingID)
	}
	if err := ss.settingRepo.Delete(ctx, settingID); err != nil {
		return errs.Wrap(op, actor, nil, err, settingID)
	}
	publishChange(ctx, ss.notifier, ss.appRepo, notify.KindSetting, setting.Key, setting.ApplicationID, setting.EnvironmentID)
	log.WithContext(ctx).Infow("setting deleted", "id", settingID, "key", setting.Key, "actor", actor)
	return nil
}

func (ss *SettingService) GetSetting(ctx context.Context, settingID uint64) (*model.Setting, error) {
	setting, err := ss.settingRepo.Get(ctx, settingID)
	return setting, errs.Wrap("SettingService.GetSetting", "", nil, err, settingID)
}

// ListSettings lists the stored rows of one application in one environment,
// without secret resolution.
func (ss *SettingService) ListSettings(ctx context.Context, applicationID, environmentID uint64) ([]*model.Setting, error) {
	settings, err := ss.settingRepo.ListScope(ctx, applicationID, environmentID)
	return settings, errs.Wrap("SettingService.ListSettings", "", nil, err, applicationID, environmentID)
}

// publishChange emits a change event for key. Publishing is best effort.
func publishChange(ctx context.Context, notifier notify.Notifier, appRepo repo.IApplicationRepository, kind notify.ChangeKind, key string, applicationID, environmentID uint64) {
	ev := notify.ChangeEvent{
		Kind:          kind,
		Key:           key,
		ApplicationID: applicationID,
		EnvironmentID: environmentID,
	}
	if app, err := appRepo.Get(ctx, applicationID); err == nil {
		ev.Sid = app.Sid
	}
	if err := notifier.Publish(ctx, ev); err != nil {
		log.WithContext(ctx).Warnw("change event not published", "kind", kind, "key", key, "error", err)
	}
}
