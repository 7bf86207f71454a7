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

package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenTransfer(t *testing.T) {
	token := NewMemoryToken()
	token.Issue("seedsuseraaa", 1000, "SEEDS")

	require.NoError(
		t,
		token.Transfer("seedsuseraaa", "seedsuserbbb", 400, "SEEDS", "test"),
	)
	assert.Equal(t, int64(600), token.Balance("seedsuseraaa", "SEEDS"))
	assert.Equal(t, int64(400), token.Balance("seedsuserbbb", "SEEDS"))

	err := token.Transfer("seedsuseraaa", "seedsuserbbb", 601, "SEEDS", "test")
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestMemoryTokenBurn(t *testing.T) {
	token := NewMemoryToken()
	token.Issue("seedsuseraaa", 100, "SEEDS")

	require.NoError(t, token.Burn("seedsuseraaa", 60, "SEEDS", "test"))
	assert.Equal(t, int64(40), token.Balance("seedsuseraaa", "SEEDS"))

	err := token.Burn("seedsuseraaa", 41, "SEEDS", "test")
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestMemoryAccountsOrdering(t *testing.T) {
	accounts := NewMemoryAccounts()
	accounts.SetScore("zzz", 1)
	accounts.SetScore("aaa", 2)
	accounts.SetScore("mmm", 3)

	assert.Equal(t, []string{"aaa", "mmm", "zzz"}, accounts.Accounts())

	score, err := accounts.CommunityScore("mmm")
	require.NoError(t, err)
	assert.Equal(t, int64(3), score)

	_, err = accounts.CommunityScore("missing")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMemoryAccountsReputation(t *testing.T) {
	accounts := NewMemoryAccounts()
	accounts.SetScore("seedsuseraaa", 10)

	require.NoError(t, accounts.AddReputation("seedsuseraaa", 3))
	require.NoError(t, accounts.AddReputation("seedsuseraaa", 3))
	assert.Equal(t, uint64(6), accounts.Reputation("seedsuseraaa"))

	err := accounts.AddReputation("missing", 1)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMemoryEscrowLifecycle(t *testing.T) {
	token := NewMemoryToken()
	token.Issue("allies.seeds", 1000000, "SEEDS")
	escrow := NewMemoryEscrow(token, "escrow.seeds")

	lockID, err := escrow.CreateLock(
		"allies.seeds",
		"hyphabank",
		1000000,
		"SEEDS",
		"golive",
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), token.Balance("allies.seeds", "SEEDS"))
	assert.Equal(t, int64(1000000), token.Balance("escrow.seeds", "SEEDS"))

	require.NoError(t, escrow.ReleaseLock(lockID))
	assert.Equal(t, int64(1000000), token.Balance("hyphabank", "SEEDS"))

	// Already settled
	err = escrow.ReleaseLock(lockID)
	require.ErrorIs(t, err, ErrLockNotFound)
}

func TestMemoryEscrowCancel(t *testing.T) {
	token := NewMemoryToken()
	token.Issue("allies.seeds", 500, "SEEDS")
	escrow := NewMemoryEscrow(token, "escrow.seeds")

	lockID, err := escrow.CreateLock(
		"allies.seeds",
		"hyphabank",
		500,
		"SEEDS",
		"golive",
	)
	require.NoError(t, err)
	require.NoError(t, escrow.CancelLock(lockID, "allies.seeds"))
	assert.Equal(t, int64(500), token.Balance("allies.seeds", "SEEDS"))
	assert.Equal(t, int64(0), token.Balance("hyphabank", "SEEDS"))
}

func TestMemoryOnboarding(t *testing.T) {
	onboarding := NewMemoryOnboarding()
	id, err := onboarding.CreateCampaign("seedsuseraaa", 50000, 10000, 5000, "SEEDS")
	require.NoError(t, err)

	campaign, ok := onboarding.Campaign(id)
	require.True(t, ok)
	assert.Equal(t, "seedsuseraaa", campaign.Owner)
	assert.Equal(t, int64(50000), campaign.MaxAmountPerInvite)
}
