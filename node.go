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

// Package gardend assembles the proposal lifecycle engine, its database and
// event bus into a runnable node.
package gardend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/seedsdao/gardend/contracts"
	"github.com/seedsdao/gardend/dao"
	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/event"
)

type Node struct {
	eventBus      *event.EventBus
	db            *database.Database
	engine        *dao.Engine
	shutdownFuncs []func(context.Context) error
	config        Config
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Node, error) {
	eventBus := event.NewEventBus(cfg.promRegistry, cfg.logger)
	n := &Node{
		config:   cfg,
		eventBus: eventBus,
		done:     make(chan struct{}),
	}
	if err := n.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if n.config.isDevMode() {
		n.configPopulateDevCollaborators()
	}
	// Load database
	db, err := database.New(n.config.logger, n.config.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	n.db = db
	// Load lifecycle engine
	n.engine = dao.NewEngine(dao.EngineConfig{
		Logger:       n.config.logger,
		DB:           n.db,
		EventBus:     n.eventBus,
		PromRegistry: n.config.promRegistry,
		Clock:        n.config.clock,
		Token:        n.config.token,
		Accounts:     n.config.accounts,
		Escrow:       n.config.escrow,
		Onboarding:   n.config.onboarding,
		SelfAccount:  n.config.selfAccount,
		AdminAccount: n.config.adminAccount,
		CyclePeriod:  n.config.cyclePeriod,
	})
	// Subscribe to inbound escrow trigger events
	n.eventBus.SubscribeFunc(
		event.EscrowTriggerEventType,
		n.engine.HandleTriggerEvent,
	)
	return n, nil
}

// configPopulateDevCollaborators substitutes in-memory collaborators for any
// not configured, so a dev node runs without external contracts
func (n *Node) configPopulateDevCollaborators() {
	if n.config.token == nil {
		n.config.token = contracts.NewMemoryToken()
	}
	if n.config.accounts == nil {
		n.config.accounts = contracts.NewMemoryAccounts()
	}
	if n.config.escrow == nil {
		n.config.escrow = contracts.NewMemoryEscrow(
			n.config.token,
			"escrow.seeds",
		)
	}
	if n.config.onboarding == nil {
		n.config.onboarding = contracts.NewMemoryOnboarding()
	}
	if n.config.adminAccount == "" {
		n.config.adminAccount = "dao.hypha"
	}
}

// Engine returns the node's lifecycle engine
func (n *Node) Engine() *dao.Engine {
	return n.engine
}

// EventBus returns the node's event bus
func (n *Node) EventBus() *event.EventBus {
	return n.eventBus
}

// Database returns the node's database
func (n *Node) Database() *database.Database {
	return n.db
}

func (n *Node) Run(ctx context.Context) error {
	// Drive scheduler ticks from the wall clock when configured
	if n.config.tickInterval > 0 {
		go n.runTicker(ctx)
	}
	// Shut down cleanly when our context is cancelled
	go func() {
		select {
		case <-ctx.Done():
			if err := n.Stop(); err != nil {
				n.config.logger.Error(
					"failure during node shutdown",
					"component", "node",
					"error", err,
				)
			}
		case <-n.done:
		}
	}()
	// Wait for shutdown signal
	<-n.done
	return nil
}

func (n *Node) runTicker(ctx context.Context) {
	ticker := time.NewTicker(n.config.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.done:
			return
		case <-ticker.C:
			if err := n.engine.OnPeriod(); err != nil {
				n.config.logger.Error(
					"scheduler tick failed",
					"component", "node",
					"error", err,
				)
			}
		}
	}
}

func (n *Node) Stop() error {
	var err error
	n.shutdownOnce.Do(func() {
		err = n.shutdown()
	})
	return err
}

func (n *Node) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if n.config.shutdownTimeout > 0 {
		shutdownTimeout = n.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	n.config.logger.Debug("starting graceful shutdown")

	// Call registered shutdown functions
	for _, fn := range n.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	n.shutdownFuncs = nil

	if n.eventBus != nil {
		n.eventBus.Stop()
	}

	if n.db != nil {
		if closeErr := n.db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("database close: %w", closeErr))
		}
	}

	n.config.logger.Debug("graceful shutdown complete")
	close(n.done)
	return err
}
