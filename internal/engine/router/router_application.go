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

// applicationRouter registers application routes
func (rt *Router) applicationRouter(r fiber.Router) {
	appGroup := r.Group("/applications")
	{
		appGroup.Get("/", rt.listApplications)           // GET /applications - list applications
		appGroup.Post("/", rt.createApplication)         // POST /applications - register, issues Sid/SKey
		appGroup.Get("/:appId", rt.getApplication)       // GET /applications/:appId
		appGroup.Put("/:appId", rt.updateApplication)    // PUT /applications/:appId - rename or lock
		appGroup.Post("/:appId/keys", rt.regenerateKeys) // POST /applications/:appId/keys - new SKey
		appGroup.Delete("/:appId", rt.deleteApplication) // DELETE /applications/:appId
	}
}

func (rt *Router) listApplications(c *fiber.Ctx) error {
	apps, err := rt.Services.Application.ListApplications(c.UserContext())
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, apps)
	return nil
}

func (rt *Router) createApplication(c *fiber.Ctx) error {
	var req applicationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	app, err := rt.Services.Application.CreateApplication(c.UserContext(), req.Name, middleware.Actor(c))
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(middleware.DETAIL, app)
	return nil
}

func (rt *Router) getApplication(c *fiber.Ctx) error {
	appID, err := paramID(c, "appId")
	if err != nil {
		return err
	}
	app, err := rt.Services.Application.GetApplication(c.UserContext(), appID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, app)
	return nil
}

func (rt *Router) updateApplication(c *fiber.Ctx) error {
	appID, err := paramID(c, "appId")
	if err != nil {
		return err
	}
	var req applicationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	app, err := rt.Services.Application.UpdateApplication(c.UserContext(), appID, req.Name, req.IsLocked, middleware.Actor(c))
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, app)
	return nil
}

func (rt *Router) regenerateKeys(c *fiber.Ctx) error {
	appID, err := paramID(c, "appId")
	if err != nil {
		return err
	}
	app, err := rt.Services.Application.RegenerateKeys(c.UserContext(), appID, middleware.Actor(c))
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, app)
	return nil
}

func (rt *Router) deleteApplication(c *fiber.Ctx) error {
	appID, err := paramID(c, "appId")
	if err != nil {
		return err
	}
	if err := rt.Services.Application.DeleteApplication(c.UserContext(), appID, middleware.Actor(c)); err != nil {
		return err
	}
	c.Locals(middleware.OPERATION, "delete application")
	return nil
}
