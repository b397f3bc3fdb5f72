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

package backend

import (
	"fmt"
	"time"
)

// Config is the configuration for creating a Backend instance.
type Config struct {
	// DocumentCacheSize is the number of document snapshots kept in memory.
	DocumentCacheSize int `yaml:"DocumentCacheSize"`

	// DocumentCacheTTL is how long a cached snapshot stays valid.
	DocumentCacheTTL string `yaml:"DocumentCacheTTL"`

	// CacheStatsInterval is the interval between cache statistics logs. Zero
	// disables the logs.
	CacheStatsInterval string `yaml:"CacheStatsInterval"`

	// Hostname is the inkwell server hostname. It is written to the logs.
	Hostname string `yaml:"Hostname"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	if c.DocumentCacheSize <= 0 {
		return fmt.Errorf(
			`invalid argument "%d" for "--document-cache-size" flag`,
			c.DocumentCacheSize,
		)
	}

	if _, err := time.ParseDuration(c.DocumentCacheTTL); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--document-cache-ttl" flag: %w`,
			c.DocumentCacheTTL,
			err,
		)
	}

	if _, err := time.ParseDuration(c.CacheStatsInterval); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--cache-stats-interval" flag: %w`,
			c.CacheStatsInterval,
			err,
		)
	}

	return nil
}

// ParseDocumentCacheTTL returns TTL for the document cache.
func (c *Config) ParseDocumentCacheTTL() (time.Duration, error) {
	result, err := time.ParseDuration(c.DocumentCacheTTL)
	if err != nil {
		return 0, fmt.Errorf("parse document cache ttl: %w", err)
	}

	return result, nil
}

// ParseCacheStatsInterval returns the interval of cache statistics logs.
func (c *Config) ParseCacheStatsInterval() (time.Duration, error) {
	result, err := time.ParseDuration(c.CacheStatsInterval)
	if err != nil {
		return 0, fmt.Errorf("parse cache stats interval: %w", err)
	}

	return result, nil
}
