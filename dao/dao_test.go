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

package dao

import (
	"sync"
	"testing"
	"time"

	"github.com/seedsdao/gardend/contracts"
	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/database/models"
	"github.com/stretchr/testify/require"
)

const (
	testAdmin = "dao.hypha"
	testSelf  = "gardend"
	testFund  = "allies.seeds"
)

// testClock is a manually stepped Clock
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{
		now: time.Unix(1700000000, 0),
	}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	engine     *Engine
	db         *database.Database
	clock      *testClock
	token      *contracts.MemoryToken
	accounts   *contracts.MemoryAccounts
	escrow     *contracts.MemoryEscrow
	onboarding *contracts.MemoryOnboarding
}

func setupTestEngine(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.New(nil, "")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	token := contracts.NewMemoryToken()
	accounts := contracts.NewMemoryAccounts()
	escrow := contracts.NewMemoryEscrow(token, "escrow.seeds")
	onboarding := contracts.NewMemoryOnboarding()
	clock := newTestClock()
	engine := NewEngine(EngineConfig{
		DB:           db,
		Clock:        clock,
		Token:        token,
		Accounts:     accounts,
		Escrow:       escrow,
		Onboarding:   onboarding,
		SelfAccount:  testSelf,
		AdminAccount: testAdmin,
	})
	return &testEnv{
		engine:     engine,
		db:         db,
		clock:      clock,
		token:      token,
		accounts:   accounts,
		escrow:     escrow,
		onboarding: onboarding,
	}
}

// seedVoices registers community scores and materializes voice balances in
// every scope
func (env *testEnv) seedVoices(t *testing.T, scores map[string]int64) {
	t.Helper()
	for account, score := range scores {
		env.accounts.SetScore(account, score)
	}
	for {
		done, err := env.engine.UpdateVoices()
		require.NoError(t, err)
		if done {
			break
		}
	}
}

// stakeProposal funds the creator and stakes the given amount
func (env *testEnv) stakeProposal(
	t *testing.T,
	proposalID uint,
	staker string,
	amount int64,
) {
	t.Helper()
	env.token.Issue(staker, amount, TokenSymbol)
	require.NoError(t, env.engine.Stake(staker, proposalID, amount))
}

// createActiveProposal submits, stakes and activates a proposal through one
// scheduler tick
func (env *testEnv) createActiveProposal(
	t *testing.T,
	spec ProposalSpec,
	stake int64,
) uint {
	t.Helper()
	proposalID, err := env.engine.CreateProposal(spec.Creator, spec)
	require.NoError(t, err)
	env.stakeProposal(t, proposalID, spec.Creator, stake)
	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	require.Equal(
		t,
		uint8(models.ProposalStageActive),
		proposal.Stage,
		"proposal should be active",
	)
	return proposalID
}

// lowerStakeMinimums drops the stake thresholds so tests can stake small
// amounts
func (env *testEnv) lowerStakeMinimums(t *testing.T, minimum int64) {
	t.Helper()
	for _, name := range []string{
		SettingRefsNewPrice,
		SettingPropCmpMin,
		SettingPropAlMin,
	} {
		require.NoError(t, env.engine.ConfigureInt(testAdmin, name, minimum))
	}
}
