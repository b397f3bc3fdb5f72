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

// Package client provides the client implementation of Inkwell. It can be
// used to edit documents of an Inkwell server over its HTTP API.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

var (
	// ErrInvalidCertFile is returned when the certificate file can not be
	// used to verify the server.
	ErrInvalidCertFile = errors.InvalidArgument("invalid cert file").WithCode("ErrInvalidCertFile")

	// ErrUnexpectedResponse is returned when the response of the server can
	// not be decoded.
	ErrUnexpectedResponse = errors.Internal("unexpected response from server").WithCode("ErrUnexpectedResponse")
)

// Client is a client that edits documents of an Inkwell server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates an instance of Client.
func New(rpcAddr string, opts ...Option) (*Client, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.Logger
	if logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
		logger = l
	}

	httpClient := options.HTTPClient
	scheme := "http"
	if options.CertFile != "" {
		scheme = "https"
	}
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if options.CertFile != "" {
			tlsConfig, err := newTLSConfig(options.CertFile, options.ServerNameOverride)
			if err != nil {
				return nil, err
			}
			transport.TLSClientConfig = tlsConfig
		}
		httpClient = &http.Client{Transport: transport}
	}

	baseURL := rpcAddr
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = scheme + "://" + baseURL
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Close closes all resources of this client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// CreateDocument creates a new document with the given title and author.
// Empty values are replaced with the defaults of the server.
func (c *Client) CreateDocument(ctx context.Context, title, author string) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodPost, "/v1/documents", types.CreateDocumentRequest{
		Title:  title,
		Author: author,
	})
}

// ListDocuments lists the summaries of the documents in the given page.
func (c *Client) ListDocuments(ctx context.Context, paging types.Paging) ([]*types.DocumentSummary, error) {
	query := url.Values{}
	if paging.Offset != "" {
		query.Set("offset", paging.Offset)
	}
	if paging.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(paging.PageSize))
	}
	if paging.IsForward {
		query.Set("forward", "true")
	}

	path := "/v1/documents"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var summaries []*types.DocumentSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetDocument returns the document of the given id.
func (c *Client) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodGet, documentPath(id), nil)
}

// GetPlainText returns the plain text of the document of the given id.
func (c *Client) GetPlainText(ctx context.Context, id string) (string, error) {
	var text types.PlainText
	if err := c.do(ctx, http.MethodGet, documentPath(id)+"/text", nil, &text); err != nil {
		return "", err
	}
	return text.Text, nil
}

// RemoveDocument removes the document of the given id.
func (c *Client) RemoveDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, documentPath(id), nil, nil)
}

// AddBlock adds a block to the document. The block is appended when
// req.AfterID is empty.
func (c *Client) AddBlock(ctx context.Context, id string, req types.AddBlockRequest) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodPost, documentPath(id)+"/blocks", req)
}

// DeleteBlock deletes the block of the given id from the document.
func (c *Client) DeleteBlock(ctx context.Context, id, blockID string) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodDelete, blockPath(id, blockID), nil)
}

// InsertText inserts text into the block at the given position. A nil style
// continues the style of the text before the position.
func (c *Client) InsertText(
	ctx context.Context,
	id, blockID string,
	position int,
	text string,
	style *richtext.Style,
) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodPost, blockPath(id, blockID)+"/text", types.InsertTextRequest{
		Position: position,
		Text:     text,
		Style:    style,
	})
}

// DeleteText deletes the text of the block in the range [start, end).
func (c *Client) DeleteText(ctx context.Context, id, blockID string, start, end int) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodPost, blockPath(id, blockID)+"/delete", types.DeleteTextRequest{
		Start: start,
		End:   end,
	})
}

// ApplyFormatting merges the given style into the text of the block in the
// range [start, end).
func (c *Client) ApplyFormatting(
	ctx context.Context,
	id, blockID string,
	start, end int,
	style richtext.Style,
) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodPost, blockPath(id, blockID)+"/format", types.FormatRequest{
		Start: start,
		End:   end,
		Style: style,
	})
}

// ReplaceContent replaces the content of the block.
func (c *Client) ReplaceContent(
	ctx context.Context,
	id, blockID string,
	content richtext.Content,
) (*document.Document, error) {
	return c.doDocument(ctx, http.MethodPut, blockPath(id, blockID)+"/content", types.ReplaceContentRequest{
		Content: content,
	})
}

// Version returns the version of the server.
func (c *Client) Version(ctx context.Context) (*types.VersionDetail, error) {
	var detail types.VersionDetail
	if err := c.do(ctx, http.MethodGet, "/v1/version", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) doDocument(ctx context.Context, method, path string, body any) (*document.Document, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, body, &raw); err != nil {
		return nil, err
	}

	doc, err := document.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnexpectedResponse)
	}
	return doc, nil
}

// do sends a request with the given body encoded as JSON and decodes the
// response into out. Error responses are returned as status errors.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnexpectedResponse)
	}
	return nil
}

// decodeError converts an error response of the server into a status error
// carrying the code of the server.
func decodeError(resp *http.Response) error {
	status := errors.StatusFromHTTP(resp.StatusCode)

	var body types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return errors.New(status, http.StatusText(resp.StatusCode))
	}

	statusErr := errors.New(status, body.Error)
	if body.Code != "" {
		statusErr = statusErr.WithCode(body.Code)
	}
	return statusErr
}

func newTLSConfig(certFile, serverNameOverride string) (*tls.Config, error) {
	pem, err := os.ReadFile(certFile)
	if err != nil {
		return nil, fmt.Errorf("read cert file %s: %w", certFile, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("append cert %s: %w", certFile, ErrInvalidCertFile)
	}

	return &tls.Config{
		RootCAs:    pool,
		ServerName: serverNameOverride,
		MinVersion: tls.VersionTLS12,
	}, nil
}

func documentPath(id string) string {
	return "/v1/documents/" + url.PathEscape(id)
}

func blockPath(id, blockID string) string {
	return documentPath(id) + "/blocks/" + url.PathEscape(blockID)
}
