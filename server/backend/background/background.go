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

// Package background manages the goroutines that the backend starts on behalf
// of its services, so that shutdown can wait for them.
package background

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
)

type routineID int32

func (c *routineID) next() string {
	next := atomic.AddInt32((*int32)(c), 1)
	return "bg" + strconv.Itoa(int(next))
}

// Background tracks goroutines started by the backend.
type Background struct {
	// closing is closed when the background starts shutting down.
	closing chan struct{}

	// wgMu blocks Add on wg while Close is waiting.
	wgMu sync.RWMutex
	wg   sync.WaitGroup

	routineID routineID
	metrics   *prometheus.Metrics
}

// New creates a new background service. metrics may be nil.
func New(metrics *prometheus.Metrics) *Background {
	return &Background{
		closing: make(chan struct{}),
		metrics: metrics,
	}
}

// AttachGoroutine runs f in a new goroutine with a routine-scoped logger in
// its context. The context is cancelled when the background is closed. It
// returns false if the background has already been closed.
func (b *Background) AttachGoroutine(
	f func(ctx context.Context),
	taskType string,
) bool {
	b.wgMu.RLock()
	defer b.wgMu.RUnlock()
	select {
	case <-b.closing:
		logging.DefaultLogger().Warnf("background closed; skipping %s", taskType)
		return false
	default:
	}

	b.wg.Add(1)
	routineLogger := logging.New(b.routineID.next())
	if b.metrics != nil {
		b.metrics.AddBackgroundGoroutines(taskType)
	}

	ctx, cancel := context.WithCancel(logging.With(context.Background(), routineLogger))
	go func() {
		select {
		case <-b.closing:
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		defer func() {
			cancel()
			b.wg.Done()
			if b.metrics != nil {
				b.metrics.RemoveBackgroundGoroutines(taskType)
			}
		}()
		f(ctx)
	}()

	return true
}

// Close cancels the attached goroutines and waits for them to exit.
func (b *Background) Close() {
	b.wgMu.Lock()
	select {
	case <-b.closing:
	default:
		close(b.closing)
	}
	b.wgMu.Unlock()

	b.wg.Wait()
}
