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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-team/inkwell/server"
	"github.com/inkwell-team/inkwell/server/backend/database/mongo"
	"github.com/inkwell-team/inkwell/server/logging"
)

var (
	gracefulTimeout = 10 * time.Second
)

var (
	flagConfPath string
	flagLogLevel string

	rpcReadTimeout time.Duration

	housekeepingInterval                 time.Duration
	housekeepingRemovedDocumentRetention time.Duration

	documentCacheTTL   time.Duration
	cacheStatsInterval time.Duration

	mongoConnectionURI                string
	mongoConnectionTimeout            time.Duration
	mongoInkwellDatabase              string
	mongoPingTimeout                  time.Duration
	mongoMonitoringEnabled            bool
	mongoMonitoringSlowQueryThreshold time.Duration

	conf = server.NewConfig()
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server [options]",
		Short: "Start Inkwell server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf.RPC.ReadTimeout = rpcReadTimeout.String()

			conf.Housekeeping.Interval = housekeepingInterval.String()
			conf.Housekeeping.RemovedDocumentRetention = housekeepingRemovedDocumentRetention.String()

			conf.Backend.DocumentCacheTTL = documentCacheTTL.String()
			conf.Backend.CacheStatsInterval = cacheStatsInterval.String()

			if mongoConnectionURI != "" {
				conf.Mongo = &mongo.Config{
					ConnectionURI:                mongoConnectionURI,
					ConnectionTimeout:            mongoConnectionTimeout.String(),
					InkwellDatabase:              mongoInkwellDatabase,
					PingTimeout:                  mongoPingTimeout.String(),
					MonitoringEnabled:            mongoMonitoringEnabled,
					MonitoringSlowQueryThreshold: mongoMonitoringSlowQueryThreshold.String(),
				}
			}

			// If config file is given, command-line arguments will be overwritten.
			if flagConfPath != "" {
				parsed, err := server.NewConfigFromFile(flagConfPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			if err := logging.SetLogLevel(flagLogLevel); err != nil {
				return err
			}

			r, err := server.New(conf)
			if err != nil {
				return err
			}

			if err := r.Start(); err != nil {
				return err
			}

			if code := handleSignal(r); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			return nil
		},
	}
}

func handleSignal(r *server.Inkwell) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	var sig os.Signal
	select {
	case s := <-sigCh:
		sig = s
	case <-r.ShutdownCh():
		return 0
	}

	graceful := false
	if sig == syscall.SIGINT || sig == syscall.SIGTERM {
		graceful = true
	}

	gracefulCh := make(chan struct{})
	go func() {
		if err := r.Shutdown(graceful); err != nil {
			return
		}
		close(gracefulCh)
	}()

	select {
	case <-sigCh:
		return 1
	case <-time.After(gracefulTimeout):
		return 1
	case <-gracefulCh:
		return 0
	}
}

func init() {
	cmd := newServerCmd()
	cmd.Flags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().IntVar(
		&conf.RPC.Port,
		"rpc-port",
		server.DefaultRPCPort,
		"RPC port",
	)
	cmd.Flags().StringVar(
		&conf.RPC.CertFile,
		"rpc-cert-file",
		"",
		"RPC certification file's path",
	)
	cmd.Flags().StringVar(
		&conf.RPC.KeyFile,
		"rpc-key-file",
		"",
		"RPC key file's path",
	)
	cmd.Flags().Int64Var(
		&conf.RPC.MaxRequestBytes,
		"rpc-max-request-bytes",
		server.DefaultRPCMaxRequestBytes,
		"Maximum client request size in bytes the server will accept.",
	)
	cmd.Flags().DurationVar(
		&rpcReadTimeout,
		"rpc-read-timeout",
		server.DefaultRPCReadTimeout,
		"Maximum duration for reading an entire request.",
	)
	cmd.Flags().IntVar(
		&conf.Profiling.Port,
		"profiling-port",
		server.DefaultProfilingPort,
		"Profiling port",
	)
	cmd.Flags().BoolVar(
		&conf.Profiling.EnablePprof,
		"enable-pprof",
		false,
		"Enable runtime profiling data via HTTP server.",
	)
	cmd.Flags().DurationVar(
		&housekeepingInterval,
		"housekeeping-interval",
		server.DefaultHousekeepingInterval,
		"housekeeping interval between housekeeping runs",
	)
	cmd.Flags().DurationVar(
		&housekeepingRemovedDocumentRetention,
		"housekeeping-removed-document-retention",
		server.DefaultHousekeepingRemovedDocumentRetention,
		"How long removed documents are kept before housekeeping purges them.",
	)
	cmd.Flags().StringVar(
		&mongoConnectionURI,
		"mongo-connection-uri",
		"",
		"MongoDB's connection URI, documents are kept in memory when empty",
	)
	cmd.Flags().DurationVar(
		&mongoConnectionTimeout,
		"mongo-connection-timeout",
		server.DefaultMongoConnectionTimeout,
		"Mongo DB's connection timeout",
	)
	cmd.Flags().StringVar(
		&mongoInkwellDatabase,
		"mongo-inkwell-database",
		server.DefaultMongoInkwellDatabase,
		"Inkwell's database name in MongoDB",
	)
	cmd.Flags().DurationVar(
		&mongoPingTimeout,
		"mongo-ping-timeout",
		server.DefaultMongoPingTimeout,
		"Mongo DB's ping timeout",
	)
	cmd.Flags().BoolVar(
		&mongoMonitoringEnabled,
		"mongo-monitoring-enabled",
		false,
		"Enable logging of slow MongoDB commands",
	)
	cmd.Flags().DurationVar(
		&mongoMonitoringSlowQueryThreshold,
		"mongo-monitoring-slow-query-threshold",
		server.DefaultMongoMonitoringSlowQueryThreshold,
		"Threshold above which MongoDB commands are logged as slow",
	)
	cmd.Flags().IntVar(
		&conf.Backend.DocumentCacheSize,
		"backend-document-cache-size",
		server.DefaultDocumentCacheSize,
		"The cache size of the documents.",
	)
	cmd.Flags().DurationVar(
		&documentCacheTTL,
		"backend-document-cache-ttl",
		server.DefaultDocumentCacheTTL,
		"TTL value to set when caching documents.",
	)
	cmd.Flags().DurationVar(
		&cacheStatsInterval,
		"backend-cache-stats-interval",
		server.DefaultCacheStatsInterval,
		"Interval of logging cache statistics, disabled when zero.",
	)
	cmd.Flags().StringVar(
		&conf.Backend.Hostname,
		"hostname",
		server.DefaultHostname,
		"Inkwell Server Hostname",
	)

	rootCmd.AddCommand(cmd)
}
