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
	"github.com/go-arcade/confhub/internal/engine/service"
	"github.com/go-arcade/confhub/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) featureRouter(r fiber.Router) {
	featureGroup := r.Group("/features")
	{
		featureGroup.Get("/", rt.listFeatures) // ?applicationId=&environmentId=
		featureGroup.Post("/", rt.addFeature)
		featureGroup.Get("/:featureId", rt.getFeature)
		featureGroup.Put("/:featureId", rt.updateFeature)
		featureGroup.Delete("/:featureId", rt.deleteFeature)
	}
}

func (rt *Router) listFeatures(c *fiber.Ctx) error {
	appID, err := queryID(c, "applicationId")
	if err != nil {
		return err
	}
	envID, err := queryID(c, "environmentId")
	if err != nil {
		return err
	}
	features, err := rt.Services.Feature.ListFeatures(c.UserContext(), appID, envID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, features)
	return nil
}

func (rt *Router) addFeature(c *fiber.Ctx) error {
	var req featureReq
	if err := bind(c, &req); err != nil {
		return err
	}
	feature := &model.Feature{
		Key:           req.Key,
		ApplicationID: req.ApplicationID,
		EnvironmentID: req.EnvironmentID,
		Value:         req.Value,
		Enabled:       req.Enabled,
		Comment:       req.Comment,
	}
	feature.Stamp(middleware.Actor(c))
	if err := rt.Services.Feature.AddFeature(c.UserContext(), feature); err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(middleware.DETAIL, feature)
	return nil
}

func (rt *Router) getFeature(c *fiber.Ctx) error {
	featureID, err := paramID(c, "featureId")
	if err != nil {
		return err
	}
	feature, err := rt.Services.Feature.GetFeature(c.UserContext(), featureID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, feature)
	return nil
}

// updateFeature edits key, value, enabled and comment; the scope is fixed.
func (rt *Router) updateFeature(c *fiber.Ctx) error {
	featureID, err := paramID(c, "featureId")
	if err != nil {
		return err
	}
	var req featureReq
	if err := bind(c, &req); err != nil {
		return err
	}
	feature, err := rt.Services.Feature.UpdateFeature(c.UserContext(), featureID, service.FeatureUpdate{
		Key:     req.Key,
		Value:   req.Value,
		Enabled: req.Enabled,
		Comment: req.Comment,
	}, middleware.Actor(c))
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, feature)
	return nil
}

func (rt *Router) deleteFeature(c *fiber.Ctx) error {
	featureID, err := paramID(c, "featureId")
	if err != nil {
		return err
	}
	if err := rt.Services.Feature.DeleteFeature(c.UserContext(), featureID, middleware.Actor(c)); err != nil {
		return err
	}
	c.Locals(middleware.OPERATION, "delete feature")
	return nil
}
