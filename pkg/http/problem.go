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

package http

import (
	"errors"
	"fmt"

	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ProblemContentType is the media type of error bodies.
const ProblemContentType = "application/problem+json"

// Problem is an error body in the shape of RFC 7807.
type Problem struct {
	Status   int          `json:"status"`
	Title    string       `json:"title"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []RowProblem `json:"errors,omitempty"`
}

// RowProblem is one failed row of an upload.
type RowProblem struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// ProblemFor classifies err. Authentication failures never carry detail.
func ProblemFor(err error) Problem {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Problem{Status: fe.Code, Title: fe.Message}
	}

	switch errs.Kind(err) {
	case errs.ErrAuthentication:
		return Problem{Status: fiber.StatusUnauthorized, Title: LoginFailed.Msg}
	case errs.ErrMisconfiguration:
		return Problem{Status: fiber.StatusServiceUnavailable, Title: Misconfigured.Msg, Detail: err.Error()}
	case errs.ErrNotFound:
		return Problem{Status: fiber.StatusNotFound, Title: NotFound.Msg, Detail: err.Error()}
	case errs.ErrDuplicate:
		return Problem{Status: fiber.StatusConflict, Title: Conflict.Msg, Detail: err.Error()}
	case errs.ErrValidation:
		return Problem{Status: fiber.StatusBadRequest, Title: BadRequest.Msg, Detail: err.Error()}
	case errs.ErrIngestion:
		p := Problem{Status: fiber.StatusUnprocessableEntity, Title: "Upload partially applied", Detail: err.Error()}
		var ie *errs.IngestionError
		if errors.As(err, &ie) {
			p.Detail = fmt.Sprintf("%d of %d rows failed", len(ie.Failures), len(ie.Failures)+ie.Succeeded)
			for _, f := range ie.Failures {
				p.Errors = append(p.Errors, RowProblem{Key: f.Key, Reason: f.Err.Error()})
			}
		}
		return p
	case errs.ErrTransaction:
		return Problem{Status: fiber.StatusInternalServerError, Title: Failed.Msg, Detail: err.Error()}
	}
	return Problem{Status: fiber.StatusInternalServerError, Title: InternalError.Msg}
}

// WithProblem writes err as a problem body.
func WithProblem(c *fiber.Ctx, err error) error {
	p := ProblemFor(err)
	p.Instance = c.Path()
	if p.Status >= fiber.StatusInternalServerError {
		log.WithContext(c.UserContext()).Errorw("request failed", "path", c.Path(), "error", err)
	}
	c.Status(p.Status)
	c.Set(fiber.HeaderContentType, ProblemContentType)
	return c.JSON(p, ProblemContentType)
}

// ErrorHandler is the fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return WithProblem(c, err)
}
