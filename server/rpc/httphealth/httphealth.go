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

// Package httphealth uses http GET to provide a health check for the server.
package httphealth

import (
	"encoding/json"
	"net/http"

	"connectrpc.com/grpchealth"
)

// Path is the path the health check is served on.
const Path = "/healthz"

// ServiceName is the name of the document service reported by the checker.
const ServiceName = "inkwell.v1.DocumentService"

// CheckResponse represents the response structure for health checks.
type CheckResponse struct {
	Status string `json:"status"`
}

// NewChecker creates a checker that reports the document service as serving.
func NewChecker() *grpchealth.StaticChecker {
	return grpchealth.NewStaticChecker(ServiceName)
}

// NewHandler creates a new HTTP handler for health checks. The service query
// parameter selects the service to check.
func NewHandler(checker grpchealth.Checker) (string, http.Handler) {
	check := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		checkRequest := grpchealth.CheckRequest{Service: r.URL.Query().Get("service")}
		checkResponse, err := checker.Check(r.Context(), &checkRequest)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		resp, err := json.Marshal(CheckResponse{checkResponse.Status.String()})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if checkResponse.Status != grpchealth.StatusServing {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if r.Method == http.MethodGet {
			_, _ = w.Write(resp)
		}
	})
	return Path, check
}
