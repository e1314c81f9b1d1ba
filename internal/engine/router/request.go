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

package router

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bind decodes the JSON body into v and validates it.
func bind(c *fiber.Ctx, v any) error {
	op := "bind " + c.Path()
	if err := c.BodyParser(v); err != nil {
		return errs.Wrap(op, "", errs.ErrValidation, err)
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" "+fe.Tag())
			}
			return errs.New(op, errs.ErrValidation, "invalid fields: %s", strings.Join(fields, ", "))
		}
		return errs.Wrap(op, "", errs.ErrValidation, err)
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.New("param "+name, errs.ErrValidation, "%s must be a positive integer", name)
	}
	return id, nil
}

// queryID reads an optional id from the query string; absent means 0.
func queryID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.New("query "+name, errs.ErrValidation, "%s must be an integer", name)
	}
	return id, nil
}

// Client credentials.
type credentialsReq struct {
	Sid         string `json:"sid" validate:"required"`
	SKey        string `json:"skey" validate:"required"`
	Environment string `json:"environment"`
}

type applicationReq struct {
	Name     string `json:"name" validate:"required,max=128"`
	IsLocked bool   `json:"isLocked"`
}

type environmentReq struct {
	Name      string `json:"name" validate:"required,max=64"`
	IsDefault bool   `json:"isDefault"`
}

type settingReq struct {
	Value    *string `json:"value"`
	Comment  string  `json:"comment" validate:"max=1024"`
	IsSecret bool    `json:"isSecret"`
}

type featureReq struct {
	Key           string `json:"key" validate:"required,max=512"`
	ApplicationID uint64 `json:"applicationId" validate:"required"`
	EnvironmentID uint64 `json:"environmentId" validate:"required"`
	Value         bool   `json:"value"`
	Enabled       bool   `json:"enabled"`
	Comment       string `json:"comment" validate:"max=1024"`
}

type secretCreateReq struct {
	Name        string `json:"name" validate:"required,max=256"`
	Value       string `json:"value" validate:"required"`
	Description string `json:"description" validate:"max=1024"`
}

type secretUpdateReq struct {
	Value       *string `json:"value"`
	Description string  `json:"description" validate:"max=1024"`
}
