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

package gardend

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/seedsdao/gardend/contracts"
	"github.com/seedsdao/gardend/dao"
)

// runMode constants for operational mode configuration
const (
	runModeServe = "serve"
	runModeDev   = "dev"
)

type Config struct {
	promRegistry prometheus.Registerer
	logger       *slog.Logger
	clock        dao.Clock
	token        contracts.Token
	accounts     contracts.Accounts
	escrow       contracts.Escrow
	onboarding   contracts.Onboarding
	dataDir      string
	selfAccount  string
	adminAccount string
	runMode      string
	// cyclePeriod is the projected cycle window length in seconds
	cyclePeriod int64
	// tickInterval drives automatic on-period ticks (0 = manual only)
	tickInterval    time.Duration
	shutdownTimeout time.Duration
}

// isDevMode returns true if running in development mode
func (c *Config) isDevMode() bool {
	return c.runMode == runModeDev
}

func (n *Node) configValidate() error {
	if n.config.isDevMode() {
		// Dev mode runs against in-memory collaborators
		return nil
	}
	if n.config.token == nil {
		return errors.New("no token collaborator configured")
	}
	if n.config.accounts == nil {
		return errors.New("no accounts collaborator configured")
	}
	if n.config.escrow == nil {
		return errors.New("no escrow collaborator configured")
	}
	if n.config.onboarding == nil {
		return errors.New("no onboarding collaborator configured")
	}
	if n.config.adminAccount == "" {
		return errors.New("no admin account configured")
	}
	return nil
}

// ConfigOptionFunc is a type that represents functions that modify the node config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new gardend config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithDatabasePath specifies the persistent data directory to use. The default is to store everything in memory
func WithDatabasePath(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithClock specifies the time source for cycle windows and decay gates.
// This defaults to the system clock
func WithClock(clock dao.Clock) ConfigOptionFunc {
	return func(c *Config) {
		c.clock = clock
	}
}

// WithToken specifies the token contract collaborator
func WithToken(token contracts.Token) ConfigOptionFunc {
	return func(c *Config) {
		c.token = token
	}
}

// WithAccounts specifies the accounts contract collaborator
func WithAccounts(accounts contracts.Accounts) ConfigOptionFunc {
	return func(c *Config) {
		c.accounts = accounts
	}
}

// WithEscrow specifies the escrow contract collaborator
func WithEscrow(escrow contracts.Escrow) ConfigOptionFunc {
	return func(c *Config) {
		c.escrow = escrow
	}
}

// WithOnboarding specifies the onboarding contract collaborator
func WithOnboarding(onboarding contracts.Onboarding) ConfigOptionFunc {
	return func(c *Config) {
		c.onboarding = onboarding
	}
}

// WithSelfAccount specifies the account that holds staked funds between
// proposal creation and settlement
func WithSelfAccount(account string) ConfigOptionFunc {
	return func(c *Config) {
		c.selfAccount = account
	}
}

// WithAdminAccount specifies the required authorization for administrative
// actions
func WithAdminAccount(account string) ConfigOptionFunc {
	return func(c *Config) {
		c.adminAccount = account
	}
}

// WithCyclePeriod specifies the projected cycle window length in seconds.
// The default approximates a lunar quarter.
func WithCyclePeriod(seconds int64) ConfigOptionFunc {
	return func(c *Config) {
		c.cyclePeriod = seconds
	}
}

// WithTickInterval specifies the wall-clock interval between automatic
// on-period ticks. The default is 0, meaning ticks are driven externally
func WithTickInterval(interval time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.tickInterval = interval
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to add metrics to. In most cases, prometheus.DefaultRegistry would be
// a good choice to get metrics working
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithRunMode sets the operational mode ("serve" or "dev").
// "dev" mode substitutes in-memory collaborators for any not configured.
func WithRunMode(mode string) ConfigOptionFunc {
	return func(c *Config) {
		c.runMode = mode
	}
}

// WithShutdownTimeout specifies the timeout for graceful shutdown. The default is 30 seconds
func WithShutdownTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}
