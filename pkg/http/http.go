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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:38
 * @file: http.go
 * @description: http server
 */

// DefaultMaxUploadBytes caps request bodies, and with them uploaded documents.
const DefaultMaxUploadBytes = 4 << 20

type Http struct {
	Host            string
	Port            int
	ExposeMetrics   bool
	AccessLog       bool
	MaxUploadBytes  int
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
	Auth            Auth
}

type TLS struct {
	CertFile string
	KeyFile  string
}

// Auth configures the admin bearer tokens.
type Auth struct {
	SecretKey    string
	Issuer       string
	AccessExpire time.Duration
}

// SetDefaults fills the zero fields.
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.MaxUploadBytes <= 0 {
		h.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 60
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10
	}
	if h.Auth.Issuer == "" {
		h.Auth.Issuer = "confhub"
	}
	if h.Auth.AccessExpire <= 0 {
		h.Auth.AccessExpire = 12 * time.Hour
	}
}

func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// FiberConfig builds the fiber settings; errors escaping handlers are written as problems.
func (h *Http) FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:               "confhub",
		BodyLimit:             h.MaxUploadBytes,
		ReadTimeout:           time.Duration(h.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(h.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(h.IdleTimeout) * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	}
}

// Server runs a fiber app until Shutdown.
type Server struct {
	cfg Http
	app *fiber.App
	err chan error
}

func NewServer(cfg Http, app *fiber.App) *Server {
	return &Server{cfg: cfg, app: app, err: make(chan error, 1)}
}

// Start listens in the background. Listen failures surface on Err.
func (s *Server) Start() {
	go func() {
		addr := s.cfg.Addr()
		log.Infow("http server starting", "addr", addr, "tls", s.cfg.TLS.CertFile != "")
		var err error
		if s.cfg.TLS.CertFile != "" && s.cfg.TLS.KeyFile != "" {
			err = s.app.ListenTLS(addr, s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			err = s.app.Listen(addr)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			s.err <- err
		}
		close(s.err)
	}()
}

func (s *Server) Err() <-chan error {
	return s.err
}

func (s *Server) Shutdown(ctx context.Context) error {
	timeout := time.Duration(s.cfg.ShutdownTimeout) * time.Second
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	log.Info("http server shutting down")
	return s.app.ShutdownWithTimeout(timeout)
}
