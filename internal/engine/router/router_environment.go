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
	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) environmentRouter(r fiber.Router) {
	envGroup := r.Group("/environments")
	{
		envGroup.Get("/", rt.listEnvironments)
		envGroup.Post("/", rt.addEnvironment)
		envGroup.Get("/:envId", rt.getEnvironment)
		envGroup.Put("/:envId", rt.updateEnvironment) // rename, or move the default flag here
		envGroup.Delete("/:envId", rt.deleteEnvironment)
	}
}

func (rt *Router) listEnvironments(c *fiber.Ctx) error {
	envs, err := rt.Services.Environment.ListEnvironments(c.UserContext())
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, envs)
	return nil
}

func (rt *Router) addEnvironment(c *fiber.Ctx) error {
	var req environmentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	env := &model.Environment{Name: req.Name, IsDefault: req.IsDefault}
	env.Stamp(middleware.Actor(c))
	if err := rt.Services.Environment.AddEnvironment(c.UserContext(), env); err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(middleware.DETAIL, env)
	return nil
}

func (rt *Router) getEnvironment(c *fiber.Ctx) error {
	envID, err := paramID(c, "envId")
	if err != nil {
		return err
	}
	env, err := rt.Services.Environment.GetEnvironment(c.UserContext(), envID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, env)
	return nil
}

func (rt *Router) updateEnvironment(c *fiber.Ctx) error {
	envID, err := paramID(c, "envId")
	if err != nil {
		return err
	}
	var req environmentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	env, err := rt.Services.Environment.GetEnvironment(c.UserContext(), envID)
	if err != nil {
		return err
	}
	env.Name = req.Name
	env.IsDefault = req.IsDefault
	env.Touch(middleware.Actor(c))
	if err := rt.Services.Environment.UpdateEnvironment(c.UserContext(), env); err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, env)
	return nil
}

func (rt *Router) deleteEnvironment(c *fiber.Ctx) error {
	envID, err := paramID(c, "envId")
	if err != nil {
		return err
	}
	if err := rt.Services.Environment.DeleteEnvironment(c.UserContext(), envID, middleware.Actor(c)); err != nil {
		return err
	}
	c.Locals(middleware.OPERATION, "delete environment")
	return nil
}
