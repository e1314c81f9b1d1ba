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
	"github.com/go-arcade/confhub/internal/engine/service"
	"github.com/go-arcade/confhub/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) settingRouter(r fiber.Router) {
	settingGroup := r.Group("/settings")
	{
		settingGroup.Get("/", rt.listSettings) // ?applicationId=&environmentId=
		settingGroup.Get("/:settingId", rt.getSetting)
		settingGroup.Put("/:settingId", rt.updateSetting)
		settingGroup.Delete("/:settingId", rt.deleteSetting)
	}
}

func (rt *Router) listSettings(c *fiber.Ctx) error {
	appID, err := queryID(c, "applicationId")
	if err != nil {
		return err
	}
	envID, err := queryID(c, "environmentId")
	if err != nil {
		return err
	}
	settings, err := rt.Services.Setting.ListSettings(c.UserContext(), appID, envID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, settings)
	return nil
}

func (rt *Router) getSetting(c *fiber.Ctx) error {
	settingID, err := paramID(c, "settingId")
	if err != nil {
		return err
	}
	setting, err := rt.Services.Setting.GetSetting(c.UserContext(), settingID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, setting)
	return nil
}

func (rt *Router) updateSetting(c *fiber.Ctx) error {
	settingID, err := paramID(c, "settingId")
	if err != nil {
		return err
	}
	var req settingReq
	if err := bind(c, &req); err != nil {
		return err
	}
	setting, err := rt.Services.Setting.UpdateSetting(c.UserContext(), settingID, service.SettingUpdate{
		Value:    req.Value,
		Comment:  req.Comment,
		IsSecret: req.IsSecret,
	}, middleware.Actor(c))
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, setting)
	return nil
}

func (rt *Router) deleteSetting(c *fiber.Ctx) error {
	settingID, err := paramID(c, "settingId")
	if err != nil {
		return err
	}
	if err := rt.Services.Setting.DeleteSetting(c.UserContext(), settingID, middleware.Actor(c)); err != nil {
		return err
	}
	c.Locals(middleware.OPERATION, "delete setting")
	return nil
}
