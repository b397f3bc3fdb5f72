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

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		code       StatusCode
		want       string
		httpStatus int
	}{
		{"InvalidArgument", ErrCodeInvalidArgument, "invalid_argument", http.StatusBadRequest},
		{"NotFound", ErrCodeNotFound, "not_found", http.StatusNotFound},
		{"AlreadyExists", ErrCodeAlreadyExists, "already_exists", http.StatusConflict},
		{"FailedPrecondition", ErrCodeFailedPrecondition, "failed_precondition", http.StatusUnprocessableEntity},
		{"Aborted", ErrCodeAborted, "aborted", http.StatusConflict},
		{"Internal", ErrCodeInternal, "internal", http.StatusInternalServerError},
		{"Unavailable", ErrCodeUnavailable, "unavailable", http.StatusServiceUnavailable},
		{"Unknown", StatusCode(999), "code_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
			assert.Equal(t, tt.httpStatus, tt.code.HTTPStatus())
		})
	}
}

func TestErrorCategoryChecking(t *testing.T) {
	t.Run("ClientErrors", func(t *testing.T) {
		for _, err := range []StatusError{
			NotFound("test"),
			InvalidArgument("test"),
			AlreadyExists("test"),
			FailedPrecond("test"),
			Aborted("test"),
		} {
			assert.True(t, IsClientError(err), "Expected %v to be a client error", err)
			assert.False(t, IsServerError(err), "Expected %v to not be a server error", err)
		}
	})

	t.Run("ServerErrors", func(t *testing.T) {
		for _, err := range []StatusError{
			Internal("test"),
			Unavailable("test"),
		} {
			assert.False(t, IsClientError(err), "Expected %v to not be a client error", err)
			assert.True(t, IsServerError(err), "Expected %v to be a server error", err)
		}
	})
}

func TestStatusOf(t *testing.T) {
	t.Run("StatusError", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, StatusOf(NotFound("test error")))
	})

	t.Run("WrappedStatusError", func(t *testing.T) {
		baseErr := NotFound("base error")
		wrappedErr := fmt.Errorf("request failed: %w", fmt.Errorf("operation failed: %w", baseErr))
		assert.Equal(t, ErrCodeNotFound, StatusOf(wrappedErr))
		assert.True(t, IsStatus(wrappedErr, ErrCodeNotFound))
	})

	t.Run("StandardError", func(t *testing.T) {
		assert.Equal(t, StatusCode(0), StatusOf(errors.New("standard error")))
		assert.Equal(t, StatusCode(0), StatusOf(nil))
		assert.False(t, IsStatus(nil, ErrCodeNotFound))
	})

	t.Run("Code", func(t *testing.T) {
		err := fmt.Errorf("find block: %w", NotFound("block not found").WithCode("ErrBlockNotFound"))
		assert.Equal(t, "ErrBlockNotFound", CodeOf(err))
		assert.Equal(t, "", CodeOf(errors.New("plain")))
	})
}

func TestWithMetadata(t *testing.T) {
	t.Run("WithMetadata adds metadata to error", func(t *testing.T) {
		errWithMeta := WithMetadata(NotFound("block not found"), map[string]string{
			"block_id": "block-1",
		})

		assert.Equal(t, ErrCodeNotFound, StatusOf(errWithMeta))
		assert.Equal(t, "block-1", Metadata(errWithMeta)["block_id"])
	})

	t.Run("WithMetadata on nil error returns nil", func(t *testing.T) {
		assert.Nil(t, WithMetadata(nil, map[string]string{"key": "value"}))
	})

	t.Run("WithMetadata with empty metadata returns original error", func(t *testing.T) {
		baseErr := Internal("internal error")
		assert.Equal(t, baseErr, WithMetadata(baseErr, nil))
		assert.Equal(t, baseErr, WithMetadata(baseErr, map[string]string{}))
	})

	t.Run("Multiple WithMetadata calls merge metadata", func(t *testing.T) {
		err1 := WithMetadata(FailedPrecond("not a text block"), map[string]string{"block_id": "b1"})
		err2 := WithMetadata(err1, map[string]string{"document_id": "d1"})

		metadata := Metadata(err2)
		assert.Equal(t, "b1", metadata["block_id"])
		assert.Equal(t, "d1", metadata["document_id"])
		assert.Equal(t, ErrCodeFailedPrecondition, StatusOf(err2))
	})

	t.Run("WithMetadata preserves error chain", func(t *testing.T) {
		wrappedErr := fmt.Errorf("operation failed: %w", AlreadyExists("block exists"))
		errWithMeta := WithMetadata(wrappedErr, map[string]string{"block_id": "b1"})

		var statusErr StatusError
		assert.True(t, errors.As(errWithMeta, &statusErr))
		assert.Equal(t, ErrCodeAlreadyExists, statusErr.Status())
		assert.Equal(t, "b1", Metadata(errWithMeta)["block_id"])
	})
}

func TestStatusFromHTTP(t *testing.T) {
	t.Run("round trip test", func(t *testing.T) {
		for _, code := range []StatusCode{
			ErrCodeInvalidArgument,
			ErrCodeNotFound,
			ErrCodeAlreadyExists,
			ErrCodeFailedPrecondition,
			ErrCodeInternal,
			ErrCodeUnavailable,
		} {
			assert.Equal(t, code, StatusFromHTTP(code.HTTPStatus()))
		}
	})

	t.Run("unknown status test", func(t *testing.T) {
		assert.Equal(t, ErrCodeInternal, StatusFromHTTP(http.StatusTeapot))
		assert.Equal(t, ErrCodeAlreadyExists, StatusFromHTTP(ErrCodeAborted.HTTPStatus()))
	})

	t.Run("new error test", func(t *testing.T) {
		err := New(ErrCodeNotFound, "document not found").WithCode("ErrDocumentNotFound")
		assert.Equal(t, "document not found", err.Error())
		assert.Equal(t, ErrCodeNotFound, StatusOf(err))
		assert.Equal(t, "ErrDocumentNotFound", CodeOf(err))
	})
}
