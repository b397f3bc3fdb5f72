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

package rpc

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/errors"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
)

const unmatchedRoute = "unmatched"

// requestID is used to generate a unique request ID.
type requestID struct {
	prefix string
	id     int32
}

// newRequestID creates a new requestID.
func newRequestID(prefix string) *requestID {
	return &requestID{
		prefix: prefix,
		id:     0,
	}
}

// next generates a new request ID.
func (r *requestID) next() string {
	next := atomic.AddInt32(&r.id, 1)
	return r.prefix + strconv.Itoa(int(next))
}

// contextMiddleware puts a request-scoped logger into the request context.
func contextMiddleware() gin.HandlerFunc {
	reqID := newRequestID("r")
	return func(c *gin.Context) {
		logger := logging.New(reqID.next())
		c.Request = c.Request.WithContext(logging.With(c.Request.Context(), logger))
		c.Next()
	}
}

// loggingMiddleware logs every request and records it in the metrics.
func loggingMiddleware(metrics *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method

		logger := logging.From(c.Request.Context())
		if err := c.Errors.Last(); err != nil {
			logging.LogRequestError(logger, method, route, duration, err.Err)
		} else {
			logging.LogRequestSuccess(logger, method, route, duration)
		}

		if metrics != nil {
			metrics.AddServerHandledCounter(method, route, strconv.Itoa(c.Writer.Status()))
			metrics.ObserveServerHandledSeconds(method, route, duration.Seconds())
		}
	}
}

// maxBytesMiddleware limits the size of request bodies.
func maxBytesMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// recoveryMiddleware turns panics of handlers into internal errors.
func recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.From(c.Request.Context()).Errorf("HTTP: panic: %v", recovered)
		abortWithError(c, errors.Internal("internal error").WithCode("ErrInternal"))
	})
}

// abortWithError writes the given error as the response and records it for
// the logging middleware.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(errors.StatusOf(err).HTTPStatus(), types.ErrorResponse{
		Error: err.Error(),
		Code:  errors.CodeOf(err),
	})
}
