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
	"testing"

	"github.com/seedsdao/gardend/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCycle(t *testing.T) {
	env := setupTestEngine(t)

	err := env.engine.InitCycle("seedsuseraaa", 10)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.engine.InitCycle(testAdmin, 10))
	latest, err := env.db.GetLatestCycle(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), latest)

	// Seeding is a one-shot operation
	err = env.engine.InitCycle(testAdmin, 20)
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	require.NoError(t, env.engine.OnPeriod())
	latest, err = env.db.GetLatestCycle(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), latest)
}

func TestProposalStaysStagedUntilStaked(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	proposalID, err := env.engine.CreateProposal(
		"seedsuseraaa",
		milestoneSpec("seedsuseraaa"),
	)
	require.NoError(t, err)
	env.stakeProposal(t, proposalID, "seedsuseraaa", 4000)

	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStageStaged), proposal.Stage)

	env.stakeProposal(t, proposalID, "seedsuseraaa", 6000)
	require.NoError(t, env.engine.OnPeriod())
	proposal, err = env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStageActive), proposal.Stage)
	assert.Equal(t, uint8(models.ProposalStatusVoting), proposal.Status)
	assert.Equal(t, uint64(0), proposal.Age)
}

func TestMilestoneLifecycle(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
		"seedsuserccc": 30,
	})
	env.token.Issue(testFund, 1000000, TokenSymbol)
	proposalID := env.createActiveProposal(t, milestoneSpec("seedsuseraaa"), 10000)

	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 100))
	require.NoError(t, env.engine.Favour("seedsuserbbb", proposalID, 50))

	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusPassed), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageDone), proposal.Stage)
	assert.True(t, proposal.Executed)

	// The grant is locked in escrow, not yet with the recipient
	assert.Equal(t, int64(0), env.token.Balance(testFund, TokenSymbol))
	assert.Equal(t, int64(0), env.token.Balance("hyphabank", TokenSymbol))
	locks, err := env.db.GetEscrowLocksByProposal(proposalID, nil)
	require.NoError(t, err)
	require.Len(t, locks, 1)
	assert.Equal(t, uint8(models.EscrowLockPending), locks[0].State)
	aux, err := env.db.GetGrantAux(proposalID, nil)
	require.NoError(t, err)
	require.NotNil(t, aux.LockID)
	assert.Equal(t, locks[0].LockID, *aux.LockID)

	// Stake refunded in full, vote rows dropped
	assert.Equal(t, int64(10000), env.token.Balance("seedsuseraaa", TokenSymbol))
	votes, err := env.db.GetVotesByProposal(proposalID, nil)
	require.NoError(t, err)
	assert.Empty(t, votes)

	// The golive trigger releases the lock to the recipient
	require.NoError(
		t,
		env.engine.HandleTrigger(TriggerGoLive, "escrow.seeds", locks[0].LockID),
	)
	assert.Equal(t, int64(1000000), env.token.Balance("hyphabank", TokenSymbol))
}

func TestMilestoneRejected(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	env.token.Issue(testFund, 1000000, TokenSymbol)
	proposalID := env.createActiveProposal(t, milestoneSpec("seedsuseraaa"), 10000)

	require.NoError(t, env.engine.Against("seedsuseraaa", proposalID, 100))
	require.NoError(t, env.engine.Against("seedsuserbbb", proposalID, 50))

	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusRejected), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageDone), proposal.Stage)

	// No payout, no lock, full stake burned
	assert.Equal(t, int64(1000000), env.token.Balance(testFund, TokenSymbol))
	locks, err := env.db.GetEscrowLocksByProposal(proposalID, nil)
	require.NoError(t, err)
	assert.Empty(t, locks)
	assert.Equal(t, int64(0), env.token.Balance("seedsuseraaa", TokenSymbol))
	assert.Equal(t, int64(0), env.token.Balance(testSelf, TokenSymbol))
}

func TestStakePartialRefundOnUnity(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedswhale11": 10000,
		"seedsuseraaa": 10,
	})
	proposalID := env.createActiveProposal(t, milestoneSpec("seedsuserppp"), 10000)

	// Unanimous support, but far below the quorum of eligible voice
	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 10))

	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusRejected), proposal.Status)

	// 95% of the stake comes back, the rest burns
	assert.Equal(t, int64(9500), env.token.Balance("seedsuserppp", TokenSymbol))
	assert.Equal(t, int64(0), env.token.Balance(testSelf, TokenSymbol))
}

func TestCampaignStreaming(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	env.token.Issue(testFund, 1000000, TokenSymbol)
	spec := ProposalSpec{
		Type:      models.ProposalTypeCampaign,
		Creator:   "seedsuseraaa",
		Fund:      testFund,
		Quantity:  1000000,
		Recipient: "hyphabank",
	}
	proposalID := env.createActiveProposal(t, spec, 10000)

	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 100))
	require.NoError(t, env.engine.Favour("seedsuserbbb", proposalID, 50))

	// Passing pays the first tranche and keeps the proposal active
	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusPassed), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageActive), proposal.Stage)
	assert.Equal(t, int64(250000), env.token.Balance("hyphabank", TokenSymbol))

	// Three more cycles stream the remaining tranches
	require.NoError(t, env.engine.OnPeriod())
	assert.Equal(t, int64(500000), env.token.Balance("hyphabank", TokenSymbol))
	require.NoError(t, env.engine.OnPeriod())
	require.NoError(t, env.engine.OnPeriod())
	assert.Equal(t, int64(1000000), env.token.Balance("hyphabank", TokenSymbol))

	proposal, err = env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStageDone), proposal.Stage)
	aux, err := env.db.GetGrantAux(proposalID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), aux.CurrentPayout)
	assert.Equal(t, uint64(4), aux.PaidCycles)
	// Stake refunded at settlement
	assert.Equal(t, int64(10000), env.token.Balance("seedsuseraaa", TokenSymbol))
}

func TestCampaignStreamHaltsWhenSupportDrops(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	env.token.Issue(testFund, 1000000, TokenSymbol)
	spec := ProposalSpec{
		Type:      models.ProposalTypeCampaign,
		Creator:   "seedsuseraaa",
		Fund:      testFund,
		Quantity:  1000000,
		Recipient: "hyphabank",
	}
	proposalID := env.createActiveProposal(t, spec, 10000)
	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 100))
	require.NoError(t, env.engine.Favour("seedsuserbbb", proposalID, 50))
	require.NoError(t, env.engine.OnPeriod())
	assert.Equal(t, int64(250000), env.token.Balance("hyphabank", TokenSymbol))

	// Support is withdrawn mid-stream
	require.NoError(t, env.engine.RevertVote("seedsuseraaa", proposalID))
	require.NoError(t, env.engine.RevertVote("seedsuserbbb", proposalID))

	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusRejected), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageDone), proposal.Stage)

	// The paid tranche stands, nothing further pays out, the stake burns
	assert.Equal(t, int64(250000), env.token.Balance("hyphabank", TokenSymbol))
	assert.Equal(t, int64(750000), env.token.Balance(testFund, TokenSymbol))
	aux, err := env.db.GetGrantAux(proposalID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), aux.CurrentPayout)
	assert.Equal(t, int64(0), env.token.Balance("seedsuseraaa", TokenSymbol))
}

func TestReferendumLifecycle(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	require.NoError(t, env.engine.ConfigureInt(testAdmin, "unit.price", 7))
	spec := ProposalSpec{
		Type:        models.ProposalTypeReferendum,
		Creator:     "seedsuseraaa",
		SettingName: "unit.price",
		NewValue:    42,
		TestCycles:  1,
		EvalCycles:  2,
	}
	proposalID := env.createActiveProposal(t, spec, 10000)
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusTest), proposal.Status)

	// Voting is open during the test window
	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 100))

	// Test window over: the new value takes effect tentatively
	require.NoError(t, env.engine.OnPeriod())
	proposal, err = env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusEvaluate), proposal.Status)
	value, err := env.engine.SettingInt("unit.price", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	// Thresholds hold through the evaluation window
	require.NoError(t, env.engine.OnPeriod())
	proposal, err = env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusEvaluate), proposal.Status)

	require.NoError(t, env.engine.OnPeriod())
	proposal, err = env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusPassed), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageDone), proposal.Stage)
	value, err = env.engine.SettingInt("unit.price", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)
	assert.Equal(t, int64(10000), env.token.Balance("seedsuseraaa", TokenSymbol))
}

func TestReferendumRejectionRestoresSetting(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	require.NoError(t, env.engine.ConfigureInt(testAdmin, "unit.price", 7))
	spec := ProposalSpec{
		Type:        models.ProposalTypeReferendum,
		Creator:     "seedsuseraaa",
		SettingName: "unit.price",
		NewValue:    42,
		TestCycles:  1,
		EvalCycles:  2,
	}
	proposalID := env.createActiveProposal(t, spec, 10000)
	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 100))
	require.NoError(t, env.engine.OnPeriod())
	value, err := env.engine.SettingInt("unit.price", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	// Support withdrawn during evaluation: the thresholds must hold every
	// cycle, so the next tick rejects and rolls the value back
	require.NoError(t, env.engine.RevertVote("seedsuseraaa", proposalID))
	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusRejected), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageDone), proposal.Stage)
	value, err = env.engine.SettingInt("unit.price", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), value)
}

func TestInviteLifecycle(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 10000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	spec := ProposalSpec{
		Type:               models.ProposalTypeInvite,
		Creator:            "seedsuseraaa",
		RewardOwner:        "seedsuserrrr",
		MaxAmountPerInvite: 50000,
		Planted:            10000,
		Reward:             5000,
		MaxAge:             2,
	}
	proposalID := env.createActiveProposal(t, spec, 10000)
	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 100))

	// The age window keeps the proposal open one extra cycle
	require.NoError(t, env.engine.OnPeriod())
	proposal, err := env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusEvaluate), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageActive), proposal.Stage)

	require.NoError(t, env.engine.OnPeriod())
	proposal, err = env.engine.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, uint8(models.ProposalStatusPassed), proposal.Status)
	assert.Equal(t, uint8(models.ProposalStageDone), proposal.Stage)

	aux, err := env.db.GetInviteAux(proposalID, nil)
	require.NoError(t, err)
	require.NotNil(t, aux.CampaignID)
	campaign, ok := env.onboarding.Campaign(*aux.CampaignID)
	require.True(t, ok)
	assert.Equal(t, "seedsuserrrr", campaign.Owner)
	assert.Equal(t, int64(50000), campaign.MaxAmountPerInvite)
}

func TestParticipationSettlement(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 1000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	proposalID := env.createActiveProposal(t, milestoneSpec("seedsuseraaa"), 1000)
	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 50))
	require.NoError(t, env.engine.Neutral("seedsuserbbb", proposalID))

	require.NoError(t, env.engine.OnPeriod())

	// One reputation for participating plus one per non-neutral vote
	assert.Equal(t, uint64(2), env.accounts.Reputation("seedsuseraaa"))
	assert.Equal(t, uint64(1), env.accounts.Reputation("seedsuserbbb"))
	participants, err := env.db.GetParticipants(nil)
	require.NoError(t, err)
	assert.Empty(t, participants)
}
