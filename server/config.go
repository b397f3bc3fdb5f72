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

package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database/mongo"
	"github.com/inkwell-team/inkwell/server/backend/housekeeping"
	"github.com/inkwell-team/inkwell/server/profiling"
	"github.com/inkwell-team/inkwell/server/rpc"
)

// Below are the values of the default values of Inkwell config.
const (
	DefaultRPCPort            = 8080
	DefaultRPCMaxRequestBytes = 4 * 1024 * 1024
	DefaultRPCReadTimeout     = 30 * time.Second
	DefaultProfilingPort      = profiling.DefaultPort

	DefaultHousekeepingInterval                 = 30 * time.Second
	DefaultHousekeepingRemovedDocumentRetention = 7 * 24 * time.Hour

	DefaultMongoConnectionURI                = "mongodb://localhost:27017"
	DefaultMongoConnectionTimeout            = 5 * time.Second
	DefaultMongoPingTimeout                  = 5 * time.Second
	DefaultMongoInkwellDatabase              = "inkwell-meta"
	DefaultMongoMonitoringSlowQueryThreshold = 100 * time.Millisecond

	DefaultDocumentCacheSize  = 1000
	DefaultDocumentCacheTTL   = 10 * time.Minute
	DefaultCacheStatsInterval = 0 * time.Second

	DefaultHostname = ""
)

// Config is the configuration for creating an Inkwell instance.
type Config struct {
	RPC          *rpc.Config          `yaml:"RPC"`
	Profiling    *profiling.Config    `yaml:"Profiling"`
	Housekeeping *housekeeping.Config `yaml:"Housekeeping"`
	Backend      *backend.Config      `yaml:"Backend"`
	Mongo        *mongo.Config        `yaml:"Mongo"`
}

// NewConfig returns a Config struct that contains reasonable defaults
// for most of the configurations.
func NewConfig() *Config {
	return newConfig(DefaultRPCPort, DefaultProfilingPort)
}

// NewConfigFromFile returns a Config struct for the given conf file.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err = yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// RPCAddr returns the RPC address.
func (c *Config) RPCAddr() string {
	return fmt.Sprintf("localhost:%d", c.RPC.Port)
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if err := c.RPC.Validate(); err != nil {
		return err
	}

	if c.Profiling != nil {
		if err := c.Profiling.Validate(); err != nil {
			return err
		}
	}

	if err := c.Housekeeping.Validate(); err != nil {
		return err
	}

	if err := c.Backend.Validate(); err != nil {
		return err
	}

	if c.Mongo != nil {
		if err := c.Mongo.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ensureDefaultValue sets the value of the option to which the default value
// should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.RPC == nil {
		c.RPC = &rpc.Config{}
	}
	if c.RPC.Port == 0 {
		c.RPC.Port = DefaultRPCPort
	}
	if c.RPC.MaxRequestBytes == 0 {
		c.RPC.MaxRequestBytes = DefaultRPCMaxRequestBytes
	}
	if c.RPC.ReadTimeout == "" {
		c.RPC.ReadTimeout = DefaultRPCReadTimeout.String()
	}

	if c.Profiling != nil && c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}

	if c.Housekeeping == nil {
		c.Housekeeping = &housekeeping.Config{}
	}
	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = DefaultHousekeepingInterval.String()
	}
	if c.Housekeeping.RemovedDocumentRetention == "" {
		c.Housekeeping.RemovedDocumentRetention = DefaultHousekeepingRemovedDocumentRetention.String()
	}

	if c.Backend == nil {
		c.Backend = &backend.Config{}
	}
	if c.Backend.DocumentCacheSize == 0 {
		c.Backend.DocumentCacheSize = DefaultDocumentCacheSize
	}
	if c.Backend.DocumentCacheTTL == "" {
		c.Backend.DocumentCacheTTL = DefaultDocumentCacheTTL.String()
	}
	if c.Backend.CacheStatsInterval == "" {
		c.Backend.CacheStatsInterval = DefaultCacheStatsInterval.String()
	}

	if c.Mongo != nil {
		if c.Mongo.ConnectionURI == "" {
			c.Mongo.ConnectionURI = DefaultMongoConnectionURI
		}

		if c.Mongo.ConnectionTimeout == "" {
			c.Mongo.ConnectionTimeout = DefaultMongoConnectionTimeout.String()
		}

		if c.Mongo.InkwellDatabase == "" {
			c.Mongo.InkwellDatabase = DefaultMongoInkwellDatabase
		}

		if c.Mongo.PingTimeout == "" {
			c.Mongo.PingTimeout = DefaultMongoPingTimeout.String()
		}

		if c.Mongo.MonitoringEnabled {
			if c.Mongo.MonitoringSlowQueryThreshold == "" {
				c.Mongo.MonitoringSlowQueryThreshold = DefaultMongoMonitoringSlowQueryThreshold.String()
			}
		}
	}
}

func newConfig(port int, profilingPort int) *Config {
	return &Config{
		RPC: &rpc.Config{
			Port:            port,
			MaxRequestBytes: DefaultRPCMaxRequestBytes,
			ReadTimeout:     DefaultRPCReadTimeout.String(),
		},
		Profiling: &profiling.Config{
			Port: profilingPort,
		},
		Housekeeping: &housekeeping.Config{
			Interval:                 DefaultHousekeepingInterval.String(),
			RemovedDocumentRetention: DefaultHousekeepingRemovedDocumentRetention.String(),
		},
		Backend: &backend.Config{
			DocumentCacheSize:  DefaultDocumentCacheSize,
			DocumentCacheTTL:   DefaultDocumentCacheTTL.String(),
			CacheStatsInterval: DefaultCacheStatsInterval.String(),
			Hostname:           DefaultHostname,
		},
	}
}
