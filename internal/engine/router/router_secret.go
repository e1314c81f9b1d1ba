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
	"github.com/go-arcade/confhub/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

// secretRouter registers secret routes. Values are write-only over the API.
func (rt *Router) secretRouter(r fiber.Router) {
	secretGroup := r.Group("/secrets")
	{
		secretGroup.Get("/", rt.getSecretList)
		secretGroup.Post("/", rt.createSecret)
		secretGroup.Put("/:secretId", rt.updateSecret)
		secretGroup.Delete("/:secretId", rt.deleteSecret)
	}
}

func (rt *Router) createSecret(c *fiber.Ctx) error {
	var req secretCreateReq
	if err := bind(c, &req); err != nil {
		return err
	}
	secret, err := rt.Services.Secret.CreateSecret(c.UserContext(), req.Name, req.Value, req.Description, middleware.Actor(c))
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(middleware.DETAIL, secret)
	return nil
}

func (rt *Router) updateSecret(c *fiber.Ctx) error {
	secretID, err := paramID(c, "secretId")
	if err != nil {
		return err
	}
	var req secretUpdateReq
	if err := bind(c, &req); err != nil {
		return err
	}
	secret, err := rt.Services.Secret.UpdateSecret(c.UserContext(), secretID, req.Value, req.Description, middleware.Actor(c))
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, secret)
	return nil
}

func (rt *Router) getSecretList(c *fiber.Ctx) error {
	secrets, err := rt.Services.Secret.ListSecrets(c.UserContext())
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, secrets)
	return nil
}

func (rt *Router) deleteSecret(c *fiber.Ctx) error {
	secretID, err := paramID(c, "secretId")
	if err != nil {
		return err
	}
	if err := rt.Services.Secret.DeleteSecret(c.UserContext(), secretID, middleware.Actor(c)); err != nil {
		return err
	}
	c.Locals(middleware.OPERATION, "delete secret")
	return nil
}
