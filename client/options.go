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

package client

import (
	"net/http"

	"go.uber.org/zap"
)

// Option configures Options.
type Option func(*Options)

// Options configures how we set up the client.
type Options struct {
	// CertFile is the path to the certificate file of the server. When it is
	// given, the client talks to the server over TLS.
	CertFile string

	// ServerNameOverride is the server name override used to verify the
	// certificate of the server.
	ServerNameOverride string

	// HTTPClient is the HTTP client used to send requests. It takes
	// precedence over CertFile.
	HTTPClient *http.Client

	// Logger is the Logger of the client.
	Logger *zap.Logger
}

// WithCertFile configures the certificate file of the client.
func WithCertFile(certFile string) Option {
	return func(o *Options) { o.CertFile = certFile }
}

// WithServerNameOverride configures the server name override of the client.
func WithServerNameOverride(serverNameOverride string) Option {
	return func(o *Options) { o.ServerNameOverride = serverNameOverride }
}

// WithHTTPClient configures the HTTP client of the client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *Options) { o.HTTPClient = httpClient }
}

// WithLogger configures the Logger of the client.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}
