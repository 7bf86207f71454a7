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

// Package dao implements the cycle-driven proposal lifecycle and voice
// engine: staged state transitions driven by the scheduler's on-period tick,
// weighted voting with delegation and decay, quorum and unity evaluation,
// type-specific payout schedules and the DHO distribution engine.
package dao

import (
	"io"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/seedsdao/gardend/contracts"
	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/event"
)

// Voting scopes. Each proposal type votes in one scope; voice balances are
// held per account per scope.
const (
	ScopeAlliance   = "alliance"
	ScopeCampaign   = "campaign"
	ScopeMilestone  = "milestone"
	ScopeReferendum = "referendum"
	ScopeDho        = "dho"
)

// VotingScopes lists the scopes a voice-holding account participates in
var VotingScopes = []string{
	ScopeAlliance,
	ScopeCampaign,
	ScopeMilestone,
	ScopeReferendum,
	ScopeDho,
}

// TokenSymbol is the token the engine stakes and pays in
const TokenSymbol = "SEEDS"

// EngineConfig carries the engine's collaborators and identity accounts
type EngineConfig struct {
	Logger       *slog.Logger
	DB           *database.Database
	EventBus     *event.EventBus
	PromRegistry prometheus.Registerer
	Clock        Clock
	Token        contracts.Token
	Accounts     contracts.Accounts
	Escrow       contracts.Escrow
	Onboarding   contracts.Onboarding
	// SelfAccount holds staked funds between proposal creation and settlement
	SelfAccount string
	// AdminAccount is the required authorization for administrative actions
	AdminAccount string
	// CyclePeriod is the length of one cycle in seconds, used to project
	// cycle windows. The default approximates a lunar quarter.
	CyclePeriod int64
}

// DefaultCyclePeriod approximates one lunar quarter in seconds
const DefaultCyclePeriod = 637860

// Engine is the proposal lifecycle and voice engine. All state lives in the
// database; the engine itself only serializes lifecycle work so that scheduler
// ticks and asynchronous writes do not interleave.
type Engine struct {
	mu      sync.Mutex
	config  EngineConfig
	db      *database.Database
	metrics engineMetrics
}

// NewEngine creates an engine from the given config
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.SelfAccount == "" {
		cfg.SelfAccount = "gardend"
	}
	if cfg.CyclePeriod == 0 {
		cfg.CyclePeriod = DefaultCyclePeriod
	}
	e := &Engine{
		config: cfg,
		db:     cfg.DB,
	}
	e.metrics.init(cfg.PromRegistry)
	return e
}

// Logger returns the engine's logger
func (e *Engine) Logger() *slog.Logger {
	return e.config.Logger
}

// DB returns the engine's database handle
func (e *Engine) DB() *database.Database {
	return e.db
}

func (e *Engine) publish(eventType event.EventType, data any) {
	if e.config.EventBus != nil {
		e.config.EventBus.Publish(eventType, event.NewEvent(eventType, data))
	}
}

func (e *Engine) requireAdmin(auth string) error {
	if e.config.AdminAccount == "" || auth != e.config.AdminAccount {
		return ErrUnauthorized
	}
	return nil
}
