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
	"strings"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/pkg/errs"
)

// addable reports whether a row may be inserted: no identifier yet, a name,
// a creator and no updater.
func addable(op string, m *model.AuditModel, name string) error {
	switch {
	case m.ID != 0:
		return errs.New(op, errs.ErrValidation, "id must be zero, got %d", m.ID)
	case strings.TrimSpace(name) == "":
		return errs.New(op, errs.ErrValidation, "name is required")
	case m.CreatedBy == "":
		return errs.New(op, errs.ErrValidation, "createdBy is required")
	case m.UpdatedBy != "":
		return errs.New(op, errs.ErrValidation, "updatedBy must be empty on add")
	}
	return nil
}

// updateable reports whether a row may be updated: persisted, named, and
// carrying both audit actors.
func updateable(op string, m *model.AuditModel, name string) error {
	switch {
	case m.ID == 0:
		return errs.New(op, errs.ErrValidation, "id is required")
	case strings.TrimSpace(name) == "":
		return errs.New(op, errs.ErrValidation, "name is required")
	case m.CreatedBy == "":
		return errs.New(op, errs.ErrValidation, "createdBy is required")
	case m.UpdatedBy == "":
		return errs.New(op, errs.ErrValidation, "updatedBy is required")
	}
	return nil
}

func requireActor(op, actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.New(op, errs.ErrValidation, "actor is required")
	}
	return nil
}
