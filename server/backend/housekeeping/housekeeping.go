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

package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-team/inkwell/server/backend/background"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
)

const taskType = "housekeeping"

// Housekeeping is the housekeeping service. It periodically purges documents
// that have been removed for longer than the retention.
type Housekeeping struct {
	database database.Database
	metrics  *prometheus.Metrics

	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// Option configures a Housekeeping.
type Option func(*Housekeeping)

// WithClock sets the clock used to compute the purge threshold.
func WithClock(now func() time.Time) Option {
	return func(h *Housekeeping) {
		h.now = now
	}
}

// New creates a new housekeeping instance. metrics may be nil.
func New(
	conf *Config,
	database database.Database,
	metrics *prometheus.Metrics,
	opts ...Option,
) (*Housekeeping, error) {
	interval, err := conf.ParseInterval()
	if err != nil {
		return nil, err
	}
	retention, err := conf.ParseRemovedDocumentRetention()
	if err != nil {
		return nil, err
	}

	h := &Housekeeping{
		database:  database,
		metrics:   metrics,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Start runs the housekeeping loop on the given background until it is
// closed.
func (h *Housekeeping) Start(bg *background.Background) error {
	if !bg.AttachGoroutine(h.run, taskType) {
		return fmt.Errorf("start housekeeping: background closed")
	}
	return nil
}

func (h *Housekeeping) run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := h.PurgeRemovedDocuments(ctx); err != nil {
				logging.From(ctx).Error(err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// PurgeRemovedDocuments deletes the documents removed before the retention
// window and returns how many were deleted.
func (h *Housekeeping) PurgeRemovedDocuments(ctx context.Context) (int, error) {
	start := time.Now()

	purged, err := h.database.PurgeDocInfos(ctx, h.now().Add(-h.retention))
	if err != nil {
		return 0, fmt.Errorf("purge removed documents: %w", err)
	}

	if purged > 0 {
		if h.metrics != nil {
			h.metrics.AddDocumentsPurged(purged)
		}
		logging.From(ctx).Infof("HSKP: purged %d, %s", purged, time.Since(start))
	}

	return purged, nil
}
