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

// Package housekeeping is the package for housekeeping service. It cleans up
// the resources and data that is no longer needed.
package housekeeping

import (
	"fmt"
	"time"
)

// Config is the configuration for the housekeeping service.
type Config struct {
	// Interval is the time between housekeeping runs.
	Interval string `yaml:"Interval"`

	// RemovedDocumentRetention is how long a removed document is kept before
	// it is purged.
	RemovedDocumentRetention string `yaml:"RemovedDocumentRetention"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Interval); err != nil {
		return fmt.Errorf(
			`invalid argument %s for "--housekeeping-interval" flag: %w`,
			c.Interval,
			err,
		)
	}

	retention, err := time.ParseDuration(c.RemovedDocumentRetention)
	if err != nil {
		return fmt.Errorf(
			`invalid argument %s for "--housekeeping-removed-document-retention" flag: %w`,
			c.RemovedDocumentRetention,
			err,
		)
	}
	if retention < 0 {
		return fmt.Errorf(
			`invalid argument %s for "--housekeeping-removed-document-retention" flag`,
			c.RemovedDocumentRetention,
		)
	}

	return nil
}

// ParseInterval parses the interval.
func (c *Config) ParseInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("parse interval %s: %w", c.Interval, err)
	}

	return interval, nil
}

// ParseRemovedDocumentRetention parses the retention of removed documents.
func (c *Config) ParseRemovedDocumentRetention() (time.Duration, error) {
	retention, err := time.ParseDuration(c.RemovedDocumentRetention)
	if err != nil {
		return 0, fmt.Errorf("parse removed document retention %s: %w", c.RemovedDocumentRetention, err)
	}

	return retention, nil
}
