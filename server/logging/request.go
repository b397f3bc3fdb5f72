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

package logging

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/inkwell-team/inkwell/pkg/errors"
)

// RequestLogLevel represents the severity level for request logging.
type RequestLogLevel int

const (
	RequestLogDebug RequestLogLevel = iota
	RequestLogInfo
	RequestLogWarn
	RequestLogError
)

// String returns the string representation of RequestLogLevel.
func (l RequestLogLevel) String() string {
	switch l {
	case RequestLogDebug:
		return "debug"
	case RequestLogInfo:
		return "info"
	case RequestLogError:
		return "error"
	}
	return "warn"
}

// toRequestLogLevel determines the log level of a failed request from the
// status of its error.
func toRequestLogLevel(err error) RequestLogLevel {
	if err == nil {
		return RequestLogDebug
	}

	// Client went away.
	if errors.Is(err, context.Canceled) {
		return RequestLogDebug
	}

	switch pkgerrors.StatusOf(err) {
	case pkgerrors.ErrCodeInvalidArgument, pkgerrors.ErrCodeNotFound, pkgerrors.ErrCodeAlreadyExists:
		return RequestLogInfo
	case pkgerrors.ErrCodeFailedPrecondition, pkgerrors.ErrCodeAborted:
		return RequestLogWarn
	case pkgerrors.ErrCodeInternal, pkgerrors.ErrCodeUnavailable:
		return RequestLogError
	default:
		return RequestLogWarn
	}
}

// LogRequestError logs a failed request with the level of its error.
func LogRequestError(logger Logger, method, path string, duration time.Duration, err error) {
	const template = "HTTP: %s %q %s => %q"
	switch toRequestLogLevel(err) {
	case RequestLogDebug:
		logger.Debugf(template, method, path, duration, err)
	case RequestLogInfo:
		logger.Infof(template, method, path, duration, err)
	case RequestLogError:
		logger.Errorf(template, method, path, duration, err)
	default:
		logger.Warnf(template, method, path, duration, err)
	}
}

// LogRequestSuccess logs a successful request at debug level.
func LogRequestSuccess(logger Logger, method, path string, duration time.Duration) {
	logger.Debugf("HTTP: %s %q %s", method, path, duration)
}
