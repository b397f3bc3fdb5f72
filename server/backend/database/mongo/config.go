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

package mongo

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyConnectionURI is returned when the connection URI is empty.
var ErrEmptyConnectionURI = errors.New("connection URI cannot be empty")

// Config is the configuration for creating a Client instance.
type Config struct {
	ConnectionTimeout            string `yaml:"ConnectionTimeout"`
	ConnectionURI                string `yaml:"ConnectionURI"`
	InkwellDatabase              string `yaml:"InkwellDatabase"`
	PingTimeout                  string `yaml:"PingTimeout"`
	MonitoringEnabled            bool   `yaml:"MonitoringEnabled"`
	MonitoringSlowQueryThreshold string `yaml:"MonitoringSlowQueryThreshold"`
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if c.ConnectionURI == "" {
		return ErrEmptyConnectionURI
	}

	if _, err := time.ParseDuration(c.ConnectionTimeout); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--mongo-connection-timeout" flag: %w`,
			c.ConnectionTimeout,
			err,
		)
	}

	if _, err := time.ParseDuration(c.PingTimeout); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--mongo-ping-timeout" flag: %w`,
			c.PingTimeout,
			err,
		)
	}

	if c.MonitoringSlowQueryThreshold != "" {
		if _, err := time.ParseDuration(c.MonitoringSlowQueryThreshold); err != nil {
			return fmt.Errorf(
				`invalid argument "%s" for "--mongo-monitoring-slow-query-threshold" flag: %w`,
				c.MonitoringSlowQueryThreshold,
				err,
			)
		}
	}

	return nil
}

// ParseConnectionTimeout returns connection timeout duration.
func (c *Config) ParseConnectionTimeout() (time.Duration, error) {
	result, err := time.ParseDuration(c.ConnectionTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse connection timeout: %w", err)
	}

	return result, nil
}

// ParsePingTimeout returns ping timeout duration.
func (c *Config) ParsePingTimeout() (time.Duration, error) {
	result, err := time.ParseDuration(c.PingTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse ping timeout: %w", err)
	}

	return result, nil
}

// ParseSlowQueryThreshold returns the slow query threshold, zero if unset.
func (c *Config) ParseSlowQueryThreshold() (time.Duration, error) {
	if c.MonitoringSlowQueryThreshold == "" {
		return 0, nil
	}

	result, err := time.ParseDuration(c.MonitoringSlowQueryThreshold)
	if err != nil {
		return 0, fmt.Errorf("parse slow query threshold: %w", err)
	}

	return result, nil
}
