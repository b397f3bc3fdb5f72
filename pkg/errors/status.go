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

// Package errors provides errors that carry a status code, so that the HTTP
// layer can map failures of the document layers to responses.
package errors

import (
	"fmt"
	"net/http"
)

// StatusCode represents the error codes used throughout Inkwell.
type StatusCode int

const (
	// ErrCodeInvalidArgument indicates that the client specified an invalid argument.
	ErrCodeInvalidArgument StatusCode = 3

	// ErrCodeNotFound indicates that some requested entity, a document or a
	// block, was not found.
	ErrCodeNotFound StatusCode = 5

	// ErrCodeAlreadyExists indicates that the entity that a client attempted to create already exists.
	ErrCodeAlreadyExists StatusCode = 6

	// ErrCodeFailedPrecondition indicates that the operation was rejected because the system is not
	// in a state required for the operation's execution.
	ErrCodeFailedPrecondition StatusCode = 9

	// ErrCodeAborted indicates that the operation was aborted by a concurrent
	// update, typically a version conflict.
	ErrCodeAborted StatusCode = 10

	// ErrCodeInternal indicates that some invariants expected by the underlying system have been broken.
	ErrCodeInternal StatusCode = 13

	// ErrCodeUnavailable indicates that the service is currently unavailable.
	ErrCodeUnavailable StatusCode = 14
)

// String returns the string representation of the error code.
func (c StatusCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeAlreadyExists:
		return "already_exists"
	case ErrCodeFailedPrecondition:
		return "failed_precondition"
	case ErrCodeAborted:
		return "aborted"
	case ErrCodeInternal:
		return "internal"
	case ErrCodeUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("code_%d", int(c))
	}
}

// IsClientError returns true if the error code represents a client-side error.
func (c StatusCode) IsClientError() bool {
	switch c {
	case ErrCodeInvalidArgument, ErrCodeNotFound, ErrCodeAlreadyExists,
		ErrCodeFailedPrecondition, ErrCodeAborted:
		return true
	default:
		return false
	}
}

// IsServerError returns true if the error code represents a server-side error.
func (c StatusCode) IsServerError() bool {
	switch c {
	case ErrCodeInternal, ErrCodeUnavailable:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the HTTP status of the error code. Errors without a
// status are reported as internal server errors.
func (c StatusCode) HTTPStatus() int {
	switch c {
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists, ErrCodeAborted:
		return http.StatusConflict
	case ErrCodeFailedPrecondition:
		return http.StatusUnprocessableEntity
	case ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// StatusFromHTTP returns the error code that HTTPStatus maps to the given
// HTTP status. A conflict is reported as ErrCodeAlreadyExists.
func StatusFromHTTP(status int) StatusCode {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidArgument
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeAlreadyExists
	case http.StatusUnprocessableEntity:
		return ErrCodeFailedPrecondition
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}
