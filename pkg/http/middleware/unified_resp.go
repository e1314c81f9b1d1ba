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

package middleware

import (
	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// Locals keys shared by handlers and middleware.
const (
	DETAIL    = "detail"
	OPERATION = "operation"
	ACTOR     = "actor"
	REQUESTID = "request_id"
)

// UnifiedResponseMiddleware wraps admin answers in the response envelope.
// Handlers set c.Locals(DETAIL, value) for a payload, or c.Locals(OPERATION, true)
// when there is nothing to return.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}
		if detail := c.Locals(DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}
		if c.Locals(OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}
		return nil
	}
}
