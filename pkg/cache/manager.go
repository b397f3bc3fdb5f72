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

package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatsProvider is a cache that reports statistics.
type StatsProvider interface {
	Name() string
	Stats() *Stats
	Len() int
}

// Manager manages multiple caches and logs their statistics periodically.
type Manager struct {
	mu       sync.Mutex
	caches   []StatsProvider
	interval time.Duration
	logger   *zap.SugaredLogger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewManager creates a new cache manager.
func NewManager(interval time.Duration, logger *zap.SugaredLogger) *Manager {
	return &Manager{
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// RegisterCache registers a cache for monitoring.
func (m *Manager) RegisterCache(cache StatsProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.caches = append(m.caches, cache)
}

// Caches returns the registered caches.
func (m *Manager) Caches() []StatsProvider {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]StatsProvider(nil), m.caches...)
}

// StartPeriodicLogging logs the statistics every interval until the context
// is done or the manager is stopped.
func (m *Manager) StartPeriodicLogging(ctx context.Context) {
	if m.interval <= 0 {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.LogCacheStats()
		}
	}
}

// LogCacheStats logs current cache statistics once.
func (m *Manager) LogCacheStats() {
	for _, cache := range m.Caches() {
		stats := cache.Stats()
		m.logger.Infof(
			"CACH: %s: len=%d, hits=%d, misses=%d, evictions=%d, hit-rate=%.2f%%",
			cache.Name(),
			cache.Len(),
			stats.Hits(),
			stats.Misses(),
			stats.Evictions(),
			stats.HitRate(),
		)
	}
}

// Stop stops the periodic logging.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}
