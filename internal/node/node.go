// Copyright 2026 Seeds DAO Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package node

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // #nosec G108
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/seedsdao/gardend"
	"github.com/seedsdao/gardend/internal/config"
)

func buildNode(cfg *config.Config, logger *slog.Logger) (*gardend.Node, time.Duration, error) {
	// Parse shutdown timeout
	shutdownTimeout := 30 * time.Second // Default timeout
	if cfg.ShutdownTimeout != "" {
		var err error
		shutdownTimeout, err = time.ParseDuration(cfg.ShutdownTimeout)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid shutdown timeout: %w", err)
		}
	}
	var tickInterval time.Duration
	if cfg.TickInterval != "" {
		var err error
		tickInterval, err = time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid tick interval: %w", err)
		}
	}
	n, err := gardend.New(
		gardend.NewConfig(
			gardend.WithLogger(logger),
			gardend.WithDatabasePath(cfg.DatabasePath),
			gardend.WithSelfAccount(cfg.SelfAccount),
			gardend.WithAdminAccount(cfg.AdminAccount),
			gardend.WithCyclePeriod(cfg.CyclePeriod),
			gardend.WithTickInterval(tickInterval),
			gardend.WithRunMode(string(cfg.RunMode)),
			gardend.WithShutdownTimeout(shutdownTimeout),
			// Enable metrics with default prometheus registry
			gardend.WithPrometheusRegistry(prometheus.DefaultRegisterer),
		),
	)
	if err != nil {
		return nil, 0, err
	}
	return n, shutdownTimeout, nil
}

func Run(cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "node")
	n, shutdownTimeout, err := buildNode(cfg, logger)
	if err != nil {
		return err
	}
	// Metrics and debug listener
	http.Handle("/metrics", promhttp.Handler())
	logger.Info(
		"serving prometheus metrics on "+fmt.Sprintf(
			"%s:%d",
			cfg.BindAddr,
			cfg.MetricsPort,
		),
		"component",
		"node",
	)
	metricsServer := &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d",
			cfg.BindAddr,
			cfg.MetricsPort,
		),
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			logger.Error(
				fmt.Sprintf("failed to start metrics listener: %s", err),
				"component", "node",
			)
			os.Exit(1)
		}
	}()
	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	// Run node in goroutine
	errChan := make(chan error, 1)
	go func() {
		//nolint:contextcheck
		err := n.Run(signalCtx)
		select {
		case errChan <- err:
		case <-signalCtx.Done():
		}
	}()

	// Wait for signal or error
	select {
	case <-signalCtx.Done():
		logger.Info("signal received, initiating graceful shutdown")

		// Shutdown metrics server
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			shutdownTimeout,
		)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}

		// Shutdown node
		return n.Stop()
	case err := <-errChan:
		return err
	}
}

// Tick runs a single scheduler tick against the configured database and
// exits. Intended for driving cycles from an external scheduler such as cron.
func Tick(cfg *config.Config, logger *slog.Logger) error {
	n, _, err := buildNode(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := n.Stop(); stopErr != nil {
			logger.Error(
				"failure during node shutdown",
				"component", "node",
				"error", stopErr,
			)
		}
	}()
	return n.Engine().OnPeriod()
}
