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
	"fmt"
	"net/http"
	"runtime"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/internal/validation"
	"github.com/inkwell-team/inkwell/internal/version"
	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/block"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/editor"
	"github.com/inkwell-team/inkwell/pkg/errors"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/documents"
)

var (
	// ErrInvalidRequest is returned when the request can not be decoded or
	// fails validation.
	ErrInvalidRequest = errors.InvalidArgument("invalid request").WithCode("ErrInvalidRequest")

	// ErrRouteNotFound is returned when no route matches the request.
	ErrRouteNotFound = errors.NotFound("route not found").WithCode("ErrRouteNotFound")
)

type documentServer struct {
	backend *backend.Backend
}

// newDocumentServer creates a new instance of documentServer.
func newDocumentServer(be *backend.Backend) *documentServer {
	return &documentServer{backend: be}
}

func registerDocumentServer(group *gin.RouterGroup, s *documentServer) {
	group.GET("/version", s.getVersion)

	group.POST("/documents", s.createDocument)
	group.GET("/documents", s.listDocuments)
	group.GET("/documents/:id", s.getDocument)
	group.GET("/documents/:id/text", s.getPlainText)
	group.DELETE("/documents/:id", s.removeDocument)

	group.POST("/documents/:id/blocks", s.addBlock)
	group.DELETE("/documents/:id/blocks/:blockID", s.deleteBlock)
	group.POST("/documents/:id/blocks/:blockID/text", s.insertText)
	group.POST("/documents/:id/blocks/:blockID/delete", s.deleteText)
	group.POST("/documents/:id/blocks/:blockID/format", s.applyFormatting)
	group.PUT("/documents/:id/blocks/:blockID/content", s.replaceContent)
}

func (s *documentServer) getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, types.VersionDetail{
		InkwellVersion: version.Version,
		GoVersion:      runtime.Version(),
		BuildDate:      version.BuildDate,
	})
}

func (s *documentServer) createDocument(c *gin.Context) {
	var req types.CreateDocumentRequest
	if err := bind(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	doc, err := documents.CreateDocument(c, s.backend, req.Title, req.Author)
	if err != nil {
		abortWithError(c, err)
		return
	}

	writeDocument(c, http.StatusCreated, doc)
}

func (s *documentServer) listDocuments(c *gin.Context) {
	paging := types.Paging{
		Offset:   c.Query("offset"),
		PageSize: database.DefaultPageSize,
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			abortWithError(c, fmt.Errorf("page_size %q: %w", raw, ErrInvalidRequest))
			return
		}
		paging.PageSize = size
	}
	if raw := c.Query("forward"); raw != "" {
		forward, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, fmt.Errorf("forward %q: %w", raw, ErrInvalidRequest))
			return
		}
		paging.IsForward = forward
	}

	summaries, err := documents.ListDocumentSummaries(c, s.backend, paging)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (s *documentServer) getDocument(c *gin.Context) {
	doc, err := documents.GetDocument(c, s.backend, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	writeDocument(c, http.StatusOK, doc)
}

func (s *documentServer) getPlainText(c *gin.Context) {
	text, err := documents.GetPlainText(c, s.backend, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.PlainText{Text: text})
}

func (s *documentServer) removeDocument(c *gin.Context) {
	if err := documents.RemoveDocument(c, s.backend, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *documentServer) addBlock(c *gin.Context) {
	var req types.AddBlockRequest
	if err := bind(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	id := req.ID
	if id == "" {
		id = documents.NewBlockID()
	}
	b, err := block.New(id, block.Type(req.Type), block.DefaultTextStyle())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if req.Text != "" {
		if b, err = block.WithContent(b, richtext.FromString(req.Text, richtext.Style{})); err != nil {
			abortWithError(c, err)
			return
		}
	}

	var action editor.Action = editor.AddBlock{Block: b}
	if req.AfterID != "" {
		action = editor.InsertBlockAfter{AfterID: req.AfterID, Block: b}
	}
	s.edit(c, http.StatusCreated, action)
}

func (s *documentServer) deleteBlock(c *gin.Context) {
	s.edit(c, http.StatusOK, editor.DeleteBlock{ID: c.Param("blockID")})
}

func (s *documentServer) insertText(c *gin.Context) {
	var req types.InsertTextRequest
	if err := bind(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	action := editor.InsertText{
		BlockID:  c.Param("blockID"),
		Position: req.Position,
		Text:     req.Text,
	}
	if req.Style != nil {
		action.Style = *req.Style
	}
	s.edit(c, http.StatusOK, action)
}

func (s *documentServer) deleteText(c *gin.Context) {
	var req types.DeleteTextRequest
	if err := bind(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	s.edit(c, http.StatusOK, editor.DeleteText{
		BlockID: c.Param("blockID"),
		Start:   req.Start,
		End:     req.End,
	})
}

func (s *documentServer) applyFormatting(c *gin.Context) {
	var req types.FormatRequest
	if err := bind(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	s.edit(c, http.StatusOK, editor.ApplyFormatting{
		BlockID: c.Param("blockID"),
		Start:   req.Start,
		End:     req.End,
		Style:   req.Style,
	})
}

func (s *documentServer) replaceContent(c *gin.Context) {
	var req types.ReplaceContentRequest
	if err := bind(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	s.edit(c, http.StatusOK, editor.ReplaceContent{
		BlockID: c.Param("blockID"),
		Content: req.Content,
	})
}

// edit applies the given actions to the document of the request and writes
// the edited document.
func (s *documentServer) edit(c *gin.Context, status int, actions ...editor.Action) {
	doc, err := documents.Edit(c, s.backend, c.Param("id"), actions...)
	if err != nil {
		abortWithError(c, err)
		return
	}

	writeDocument(c, status, doc)
}

// bind decodes the JSON body of the request into req and validates it. An
// empty body leaves req as is.
func bind(c *gin.Context, req any) error {
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	if err := validation.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func writeDocument(c *gin.Context, status int, doc *document.Document) {
	data, err := doc.Marshal()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Data(status, "application/json; charset=utf-8", data)
}
