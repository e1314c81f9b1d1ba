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
	"github.com/gofiber/fiber/v2"
)

// clientRouter registers the endpoints applications call with their Sid/SKey.
// They answer bare JSON arrays, not the admin envelope.
func (rt *Router) clientRouter(r fiber.Router) {
	r.Post("/configuration", rt.configuration) // POST /api/configuration - effective configuration
	r.Post("/featureset", rt.featureSet)       // POST /api/featureset - effective feature set
}

func (rt *Router) configuration(c *fiber.Ctx) error {
	var req credentialsReq
	if err := bind(c, &req); err != nil {
		return err
	}
	out, err := rt.Services.Configuration.ResolveConfiguration(c.UserContext(), req.Sid, req.SKey, req.Environment)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (rt *Router) featureSet(c *fiber.Ctx) error {
	var req credentialsReq
	if err := bind(c, &req); err != nil {
		return err
	}
	out, err := rt.Services.FeatureSet.ResolveFeatureSet(c.UserContext(), req.Sid, req.SKey, req.Environment)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
