/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package rpc provides the HTTP API of the document service.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/rpc/httphealth"
)

// Server is a normal server that processes the logic requested by the client.
type Server struct {
	conf       *Config
	handler    http.Handler
	httpServer *http.Server
}

// NewServer creates a new instance of Server.
func NewServer(conf *Config, be *backend.Backend) (*Server, error) {
	readTimeout, err := time.ParseDuration(conf.ReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse read timeout %s: %w", conf.ReadTimeout, err)
	}

	handler := NewHandler(conf, be)
	return &Server{
		conf:    conf,
		handler: handler,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", conf.Port),
			Handler:           handler,
			ReadHeaderTimeout: readTimeout,
			ReadTimeout:       readTimeout,
		},
	}, nil
}

// NewHandler creates the router serving the document API on the given
// backend.
func NewHandler(conf *Config, be *backend.Backend) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.ContextWithFallback = true
	router.Use(
		contextMiddleware(),
		loggingMiddleware(be.Metrics),
		recoveryMiddleware(),
		maxBytesMiddleware(conf.MaxRequestBytes),
	)

	healthPath, healthHandler := httphealth.NewHandler(httphealth.NewChecker())
	router.GET(healthPath, gin.WrapH(healthHandler))
	router.HEAD(healthPath, gin.WrapH(healthHandler))

	registerDocumentServer(router.Group("/v1"), newDocumentServer(be))
	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, ErrRouteNotFound)
	})

	return router
}

// Handler returns the handler of this server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts this server by opening the rpc port.
func (s *Server) Start() error {
	return s.listenAndServe()
}

// Shutdown shuts down this server.
func (s *Server) Shutdown(graceful bool) {
	if graceful {
		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			logging.DefaultLogger().Errorf("HTTP: shutdown: %v", err)
		}
		return
	}

	if err := s.httpServer.Close(); err != nil {
		logging.DefaultLogger().Errorf("HTTP: close: %v", err)
	}
}

func (s *Server) listenAndServe() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		logging.DefaultLogger().Error(err)
		return err
	}

	go func() {
		logging.DefaultLogger().Infof("serving RPC on %d", s.conf.Port)

		var err error
		if s.conf.CertFile != "" && s.conf.KeyFile != "" {
			err = s.httpServer.ServeTLS(lis, s.conf.CertFile, s.conf.KeyFile)
		} else {
			err = s.httpServer.Serve(lis)
		}
		if !errors.Is(err, http.ErrServerClosed) {
			logging.DefaultLogger().Error(err)
		}
	}()

	return nil
}
