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

package types

import (
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
)

// CreateDocumentRequest is the request body of creating a document. Empty
// fields fall back to the document defaults.
type CreateDocumentRequest struct {
	Title  string `json:"title" validate:"max=256"`
	Author string `json:"author" validate:"max=128"`
}

// AddBlockRequest is the request body of adding a block. The block is
// appended when AfterID is empty and inserted after the block AfterID names
// otherwise; an AfterID naming no block is an error. The server generates an
// ID when none is given.
type AddBlockRequest struct {
	ID      string `json:"id" validate:"omitempty,case_sensitive_slug,max=64"`
	Type    string `json:"type" validate:"required,oneof=paragraph heading1 heading2 heading3 bulleted numbered table image"`
	AfterID string `json:"afterId"`
	Text    string `json:"text"`
}

// InsertTextRequest is the request body of inserting text into a text block.
// A nil style continues the style at the position.
type InsertTextRequest struct {
	Position int             `json:"position" validate:"gte=0"`
	Text     string          `json:"text" validate:"required"`
	Style    *richtext.Style `json:"style"`
}

// DeleteTextRequest is the request body of deleting the text in [Start, End).
type DeleteTextRequest struct {
	Start int `json:"start" validate:"gte=0"`
	End   int `json:"end" validate:"gte=0"`
}

// FormatRequest is the request body of applying a style to [Start, End).
type FormatRequest struct {
	Start int            `json:"start" validate:"gte=0"`
	End   int            `json:"end" validate:"gte=0"`
	Style richtext.Style `json:"style"`
}

// ReplaceContentRequest is the request body of replacing the content of a
// text block.
type ReplaceContentRequest struct {
	Content richtext.Content `json:"content"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
