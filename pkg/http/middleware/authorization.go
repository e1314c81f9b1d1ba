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
	"errors"
	"strings"

	"github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/http/jwt"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
)

// AuthorizationMiddleware checks the admin bearer token and stores the actor
// under ACTOR.
func AuthorizationMiddleware(auth http.Auth) fiber.Handler {
	key := []byte(auth.SecretKey)
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, http.TokenBeEmpty.Msg)
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, http.TokenBeEmpty.Msg)
		}

		claims, err := jwt.ParseToken(strings.TrimSpace(token), auth.Issuer, key)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, http.TokenExpired.Msg)
			}
			log.Debugw("parse token failed", "path", c.Path(), "error", err)
			return fiber.NewError(fiber.StatusUnauthorized, http.InvalidToken.Msg)
		}

		c.Locals(ACTOR, claims.Actor)
		return c.Next()
	}
}

// Actor returns the authenticated admin, or "" outside the admin group.
func Actor(c *fiber.Ctx) string {
	actor, _ := c.Locals(ACTOR).(string)
	return actor
}
