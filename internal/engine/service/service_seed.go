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
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
)

// SeedActor is recorded as the creator of seeded rows.
const SeedActor = "system"

// seedEnvironments are created in order; the first becomes the default.
var seedEnvironments = []string{"Development", "Staging", "Production"}

// Seed creates the stock environments when none exist. It is a no-op on a
// populated store.
func (es *EnvironmentService) Seed(ctx context.Context) error {
	const op = "EnvironmentService.Seed"
	count, err := es.envRepo.Count(ctx)
	if err != nil {
		return errs.Wrap(op, SeedActor, nil, err)
	}
	if count > 0 {
		log.WithContext(ctx).Debugw("environments present, skipping seed", "count", count)
		return nil
	}

	for _, name := range seedEnvironments {
		env := &model.Environment{Name: name}
		env.Stamp(SeedActor)
		if err := es.AddEnvironment(ctx, env); err != nil {
			return errs.Wrap(op, SeedActor, nil, err, name)
		}
	}
	log.WithContext(ctx).Infow("environments seeded", "names", seedEnvironments)
	return nil
}
