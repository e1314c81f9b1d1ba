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
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/01/15
 * @file: service_environment.go
 * @description: environments and the single-default rule
 */

// EnvironmentService keeps at most one environment flagged as default, and
// exactly one once any environment exists.
type EnvironmentService struct {
	envRepo    repo.IEnvironmentRepository
	uploadRepo repo.IUploadRepository
}

func NewEnvironmentService(envRepo repo.IEnvironmentRepository, uploadRepo repo.IUploadRepository) *EnvironmentService {
	return &EnvironmentService{envRepo: envRepo, uploadRepo: uploadRepo}
}

// AddEnvironment inserts env. The first environment is always the default.
// When env ends up default the previous default is cleared before the insert.
func (es *EnvironmentService) AddEnvironment(ctx context.Context, env *model.Environment) error {
	const op = "EnvironmentService.AddEnvironment"
	if err := addable(op, &env.AuditModel, env.Name); err != nil {
		return err
	}

	count, err := es.envRepo.Count(ctx)
	if err != nil {
		return errs.Wrap(op, env.CreatedBy, nil, err, env.Name)
	}
	if count == 0 {
		env.IsDefault = true
	}

	if env.IsDefault {
		if err := es.envRepo.ClearDefault(ctx, env.CreatedBy); err != nil {
			return errs.Wrap(op, env.CreatedBy, nil, err, env.Name)
		}
	}
	if err := es.envRepo.Create(ctx, env); err != nil {
		return errs.Wrap(op, env.CreatedBy, nil, err, env.Name)
	}

	log.WithContext(ctx).Infow("environment added", "id", env.ID, "name", env.Name, "default", env.IsDefault, "actor", env.CreatedBy)
	return nil
}

// UpdateEnvironment renames env or moves the default flag to it. With a
// single environment in the store the flag is pinned on. Dropping the flag
// from the current default is rejected: flag another environment instead.
func (es *EnvironmentService) UpdateEnvironment(ctx context.Context, env *model.Environment) error {
	const op = "EnvironmentService.UpdateEnvironment"
	if err := updateable(op, &env.AuditModel, env.Name); err != nil {
		return err
	}

	current, err := es.envRepo.Get(ctx, env.ID)
	if err != nil {
		return errs.Wrap(op, env.UpdatedBy, nil, err, env.ID)
	}

	count, err := es.envRepo.Count(ctx)
	if err != nil {
		return errs.Wrap(op, env.UpdatedBy, nil, err, env.ID)
	}
	if count <= 1 {
		env.IsDefault = true
	}
	if current.IsDefault && !env.IsDefault {
		return errs.New(op, errs.ErrValidation, "environment %q is the default; mark another environment as default instead", current.Name)
	}

	if env.IsDefault && !current.IsDefault {
		if err := es.envRepo.ClearDefault(ctx, env.UpdatedBy); err != nil {
			return errs.Wrap(op, env.UpdatedBy, nil, err, env.ID)
		}
	}
	env.Touch(env.UpdatedBy)
	if err := es.envRepo.Update(ctx, env); err != nil {
		return errs.Wrap(op, env.UpdatedBy, nil, err, env.ID)
	}

	log.WithContext(ctx).Infow("environment updated", "id", env.ID, "name", env.Name, "default", env.IsDefault, "actor", env.UpdatedBy)
	return nil
}

// DeleteEnvironment removes a non-default environment that no upload refers to, along with its features.
func (es *EnvironmentService) DeleteEnvironment(ctx context.Context, id uint64, actor string) error {
	const op = "EnvironmentService.DeleteEnvironment"
	env, err := es.envRepo.Get(ctx, id)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, id)
	}
	if env.IsDefault {
		return errs.New(op, errs.ErrValidation, "environment %q is the default and cannot be deleted", env.Name)
	}
	n, err := es.uploadRepo.CountByEnvironment(ctx, id)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, id)
	}
	if n > 0 {
		return errs.New(op, errs.ErrValidation, "environment %q still has %d upload(s); roll them back first", env.Name, n)
	}
	if err := es.envRepo.Delete(ctx, id); err != nil {
		return errs.Wrap(op, actor, nil, err, id)
	}
	log.WithContext(ctx).Infow("environment deleted", "id", id, "name", env.Name, "actor", actor)
	return nil
}

func (es *EnvironmentService) GetEnvironment(ctx context.Context, id uint64) (*model.Environment, error) {
	env, err := es.envRepo.Get(ctx, id)
	return env, errs.Wrap("EnvironmentService.GetEnvironment", "", nil, err, id)
}

func (es *EnvironmentService) ListEnvironments(ctx context.Context) ([]*model.Environment, error) {
	envs, err := es.envRepo.List(ctx)
	return envs, errs.Wrap("EnvironmentService.ListEnvironments", "", nil, err)
}
