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

// Package backend provides the backend implementation of Inkwell. This
// package is responsible for managing the database and the other resources
// the document service runs on.
package backend

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inkwell-team/inkwell/pkg/cache"
	"github.com/inkwell-team/inkwell/server/backend/background"
	"github.com/inkwell-team/inkwell/server/backend/database"
	memdb "github.com/inkwell-team/inkwell/server/backend/database/memory"
	"github.com/inkwell-team/inkwell/server/backend/database/mongo"
	"github.com/inkwell-team/inkwell/server/backend/housekeeping"
	"github.com/inkwell-team/inkwell/server/backend/sync"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
)

const documentCacheName = "documents"

// Backend manages Inkwell's backend such as Database and the document cache.
type Backend struct {
	Config *Config

	// Cache is the central cache manager for all caches.
	Cache *cache.Manager
	// Documents caches stored document snapshots by document ID.
	Documents *cache.LRUWithExpires[string, *database.DocInfo]
	// Lockers is used to serialize edits on the same document.
	Lockers *sync.LockerManager

	// Background is used to manage background tasks.
	Background *background.Background
	// Housekeeping purges removed documents.
	Housekeeping *housekeeping.Housekeeping

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
	// DB is the database instance.
	DB database.Database
}

// New creates a new instance of Backend.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	housekeepingConf *housekeeping.Config,
	metrics *prometheus.Metrics,
) (*Backend, error) {
	// 01. Use the hostname of the current machine if none is given.
	if conf.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("os.Hostname: %w", err)
		}
		conf.Hostname = hostname
	}

	// 02. Create the document cache and register it to the cache manager.
	ttl, err := conf.ParseDocumentCacheTTL()
	if err != nil {
		return nil, err
	}
	statsInterval, err := conf.ParseCacheStatsInterval()
	if err != nil {
		return nil, err
	}
	documents, err := cache.NewLRUWithExpires[string, *database.DocInfo](
		conf.DocumentCacheSize,
		ttl,
		documentCacheName,
	)
	if err != nil {
		return nil, err
	}
	cacheManager := cache.NewManager(statsInterval, logging.DefaultLogger())
	cacheManager.RegisterCache(documents)
	if metrics != nil {
		if err := metrics.RegisterCache(documents); err != nil {
			return nil, err
		}
	}

	// 03. Create the database instance. If the MongoDB configuration is given,
	// create a MongoDB instance. Otherwise, create a memory database instance.
	var db database.Database
	if mongoConf != nil {
		db, err = mongo.Dial(mongoConf)
		if err != nil {
			return nil, err
		}
	} else {
		db, err = memdb.New()
		if err != nil {
			return nil, err
		}
	}

	// 04. Create the housekeeping instance that runs on the background.
	housekeeper, err := housekeeping.New(housekeepingConf, db, metrics)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	dbInfo := "memory"
	if mongoConf != nil {
		dbInfo = mongoConf.ConnectionURI
	}
	logging.DefaultLogger().Infof("backend created: db: %s, host: %s", dbInfo, conf.Hostname)

	return &Backend{
		Config: conf,

		Cache:     cacheManager,
		Documents: documents,
		Lockers:   sync.New(),

		Background:   background.New(metrics),
		Housekeeping: housekeeper,

		Metrics: metrics,
		DB:      db,
	}, nil
}

// Start starts the backend.
func (b *Backend) Start() error {
	if err := b.Housekeeping.Start(b.Background); err != nil {
		return err
	}

	b.Background.AttachGoroutine(func(ctx context.Context) {
		b.Cache.StartPeriodicLogging(ctx)
	}, "cache-stats")

	logging.DefaultLogger().Infof("backend started")
	return nil
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	b.Cache.Stop()
	b.Background.Close()

	if err := b.DB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	logging.DefaultLogger().Infof("backend stopped")
	return nil
}
