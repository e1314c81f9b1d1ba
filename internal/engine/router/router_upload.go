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
	"strconv"

	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

// uploadRouter registers upload routes
func (rt *Router) uploadRouter(r fiber.Router) {
	uploadGroup := r.Group("/uploads")
	{
		uploadGroup.Get("/", rt.listUploads)                // GET /uploads?applicationId= - list uploads
		uploadGroup.Post("/", rt.upload)                    // POST /uploads - multipart file, applicationId, environmentId
		uploadGroup.Get("/:uploadId", rt.getUpload)         // GET /uploads/:uploadId - upload with its document
		uploadGroup.Delete("/:uploadId", rt.rollbackUpload) // DELETE /uploads/:uploadId - rollback upload and settings
	}
}

func (rt *Router) upload(c *fiber.Ctx) error {
	const op = "router.upload"
	fh, err := c.FormFile("file")
	if err != nil {
		return errs.Wrap(op, "", errs.ErrValidation, err, "file")
	}
	appID, err := strconv.ParseUint(c.FormValue("applicationId"), 10, 64)
	if err != nil || appID == 0 {
		return errs.New(op, errs.ErrValidation, "applicationId must be a positive integer")
	}
	var envID *uint64
	if raw := c.FormValue("environmentId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return errs.New(op, errs.ErrValidation, "environmentId must be a positive integer")
		}
		envID = &id
	}

	f, err := fh.Open()
	if err != nil {
		return errs.Wrap(op, "", errs.ErrValidation, err, fh.Filename)
	}
	defer f.Close()

	upload, created, err := rt.Services.Upload.Ingest(c.UserContext(), f, appID, envID, fh.Filename, middleware.Actor(c))
	if err != nil {
		return err
	}
	upload.Json = ""
	c.Status(fiber.StatusCreated)
	c.Locals(middleware.DETAIL, fiber.Map{
		"upload":  upload,
		"created": created,
	})
	return nil
}

func (rt *Router) listUploads(c *fiber.Ctx) error {
	appID, err := queryID(c, "applicationId")
	if err != nil {
		return err
	}
	uploads, err := rt.Services.Upload.ListUploads(c.UserContext(), appID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, uploads)
	return nil
}

func (rt *Router) getUpload(c *fiber.Ctx) error {
	uploadID, err := paramID(c, "uploadId")
	if err != nil {
		return err
	}
	upload, err := rt.Services.Upload.GetUpload(c.UserContext(), uploadID)
	if err != nil {
		return err
	}
	c.Locals(middleware.DETAIL, upload)
	return nil
}

func (rt *Router) rollbackUpload(c *fiber.Ctx) error {
	uploadID, err := paramID(c, "uploadId")
	if err != nil {
		return err
	}
	if err := rt.Services.Upload.RollbackUpload(c.UserContext(), uploadID, middleware.Actor(c)); err != nil {
		return err
	}
	c.Locals(middleware.OPERATION, "rollback upload")
	return nil
}
