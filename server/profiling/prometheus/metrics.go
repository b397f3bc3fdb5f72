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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inkwell-team/inkwell/internal/version"
	"github.com/inkwell-team/inkwell/pkg/cache"
)

const (
	namespace     = "inkwell"
	methodLabel   = "http_method"
	routeLabel    = "http_route"
	codeLabel     = "http_code"
	actionLabel   = "action"
	resultLabel   = "result"
	taskTypeLabel = "task_type"
	cacheLabel    = "cache"

	// ResultSuccess is the result label of a successful editor action.
	ResultSuccess = "success"

	// ResultFailure is the result label of a failed editor action.
	ResultFailure = "failure"
)

// Metrics manages the metric information that Inkwell is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion        *prometheus.GaugeVec
	serverHandledCounter *prometheus.CounterVec
	serverHandledSeconds *prometheus.HistogramVec

	editorActionsTotal    *prometheus.CounterVec
	editSnapshotBytes     prometheus.Histogram
	documentsCreatedTotal prometheus.Counter
	documentsRemovedTotal prometheus.Counter
	documentsPurgedTotal  prometheus.Counter

	backgroundGoroutinesTotal *prometheus.GaugeVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		serverHandledCounter: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "server_handled_total",
			Help:      "Total number of HTTP requests completed on the server, regardless of success or failure.",
		}, []string{methodLabel, routeLabel, codeLabel}),
		serverHandledSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "server_handled_seconds",
			Help:      "The response time of HTTP requests.",
		}, []string{methodLabel, routeLabel}),
		editorActionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "actions_total",
			Help:      "The total count of editor actions dispatched against stored documents.",
		}, []string{actionLabel, resultLabel}),
		editSnapshotBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "snapshot_bytes",
			Help:      "The size of document snapshots stored after an edit.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}),
		documentsCreatedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "created_total",
			Help:      "The total count of created documents.",
		}),
		documentsRemovedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "removed_total",
			Help:      "The total count of removed documents.",
		}),
		documentsPurgedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "purged_total",
			Help:      "The total count of removed documents purged by housekeeping.",
		}),
		backgroundGoroutinesTotal: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "goroutines_total",
			Help:      "The total number of goroutines attached by a particular background task.",
		}, []string{taskTypeLabel}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddServerHandledCounter adds the number of HTTP requests completed on the
// server.
func (m *Metrics) AddServerHandledCounter(method, route, code string) {
	m.serverHandledCounter.With(prometheus.Labels{
		methodLabel: method,
		routeLabel:  route,
		codeLabel:   code,
	}).Inc()
}

// ObserveServerHandledSeconds adds an observation for response time of the
// given route.
func (m *Metrics) ObserveServerHandledSeconds(method, route string, seconds float64) {
	m.serverHandledSeconds.With(prometheus.Labels{
		methodLabel: method,
		routeLabel:  route,
	}).Observe(seconds)
}

// AddEditorAction adds the number of editor actions with the given result.
func (m *Metrics) AddEditorAction(action, result string) {
	m.editorActionsTotal.With(prometheus.Labels{
		actionLabel: action,
		resultLabel: result,
	}).Inc()
}

// ObserveSnapshotBytes adds an observation for the size of a stored snapshot.
func (m *Metrics) ObserveSnapshotBytes(bytes int) {
	m.editSnapshotBytes.Observe(float64(bytes))
}

// AddDocumentsCreated adds the number of created documents.
func (m *Metrics) AddDocumentsCreated() {
	m.documentsCreatedTotal.Inc()
}

// AddDocumentsRemoved adds the number of removed documents.
func (m *Metrics) AddDocumentsRemoved() {
	m.documentsRemovedTotal.Inc()
}

// AddDocumentsPurged adds the number of purged documents.
func (m *Metrics) AddDocumentsPurged(count int) {
	m.documentsPurgedTotal.Add(float64(count))
}

// AddBackgroundGoroutines adds the number of goroutines attached by a particular background task.
func (m *Metrics) AddBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Inc()
}

// RemoveBackgroundGoroutines removes the number of goroutines attached by a particular background task.
func (m *Metrics) RemoveBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Dec()
}

// RegisterCache exports the statistics of the given cache. Values are read
// from the cache on every scrape.
func (m *Metrics) RegisterCache(c cache.StatsProvider) error {
	labels := prometheus.Labels{cacheLabel: c.Name()}
	funcs := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "hits_total",
			Help:        "The total count of cache hits.",
			ConstLabels: labels,
		}, func() float64 { return float64(c.Stats().Hits()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "misses_total",
			Help:        "The total count of cache misses.",
			ConstLabels: labels,
		}, func() float64 { return float64(c.Stats().Misses()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "evictions_total",
			Help:        "The total count of entries that left the cache.",
			ConstLabels: labels,
		}, func() float64 { return float64(c.Stats().Evictions()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "entries",
			Help:        "The number of entries in the cache.",
			ConstLabels: labels,
		}, func() float64 { return float64(c.Len()) }),
	}

	for _, collector := range funcs {
		if err := m.registry.Register(collector); err != nil {
			return fmt.Errorf("register cache %s: %w", c.Name(), err)
		}
	}

	return nil
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
