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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateVoicesFromScores(t *testing.T) {
	env := setupTestEngine(t)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})

	for _, scope := range VotingScopes {
		voice, err := env.db.GetVoice("seedsuseraaa", scope, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(100), voice.Balance, "scope %s", scope)
	}

	// A changed score flows through on the next update
	env.accounts.SetScore("seedsuserbbb", 75)
	done, err := env.engine.UpdateVoices()
	require.NoError(t, err)
	require.True(t, done)
	voice, err := env.db.GetVoice("seedsuserbbb", ScopeCampaign, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(75), voice.Balance)
}

func TestUpdateVoicesBatches(t *testing.T) {
	env := setupTestEngine(t)
	require.NoError(t, env.engine.ConfigureInt(testAdmin, SettingBatchSize, 2))
	env.accounts.SetScore("seedsuseraaa", 10)
	env.accounts.SetScore("seedsuserbbb", 20)
	env.accounts.SetScore("seedsuserccc", 30)

	done, err := env.engine.UpdateVoices()
	require.NoError(t, err)
	assert.False(t, done)
	done, err = env.engine.UpdateVoices()
	require.NoError(t, err)
	assert.True(t, done)

	// Cursor reset; the next pass starts over
	cursor, err := env.db.GetBatchCursorName(jobVoiceUpdate, nil)
	require.NoError(t, err)
	assert.Equal(t, "", cursor)
	voice, err := env.db.GetVoice("seedsuserccc", ScopeDho, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(30), voice.Balance)
}

func TestUpdateVoicesCursorSurvivesAccountChurn(t *testing.T) {
	env := setupTestEngine(t)
	require.NoError(t, env.engine.ConfigureInt(testAdmin, SettingBatchSize, 2))
	env.accounts.SetScore("seedsuseraaa", 10)
	env.accounts.SetScore("seedsuserbbb", 20)
	env.accounts.SetScore("seedsuserccc", 30)
	env.accounts.SetScore("seedsuserddd", 40)

	done, err := env.engine.UpdateVoices()
	require.NoError(t, err)
	require.False(t, done)

	// Removing an already-processed account mid-pass must not shift the
	// resume point past the remaining accounts
	env.accounts.RemoveAccount("seedsuseraaa")
	done, err = env.engine.UpdateVoices()
	require.NoError(t, err)
	require.True(t, done)
	for _, account := range []string{"seedsuserccc", "seedsuserddd"} {
		voice, err := env.db.GetVoice(account, ScopeCampaign, nil)
		require.NoError(t, err)
		assert.NotZero(t, voice.Balance, "account %s", account)
	}
}

func TestVoiceDecaySchedule(t *testing.T) {
	env := setupTestEngine(t)
	require.NoError(t, env.engine.ConfigureInt(testAdmin, SettingDecayTime, 30))
	require.NoError(t, env.engine.ConfigureInt(testAdmin, SettingPropDecaySec, 5))
	require.NoError(t, env.engine.ConfigureInt(testAdmin, SettingVoiceDecayPct, 15))
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 20,
		"seedsuserbbb": 40,
		"seedsuserccc": 60,
		"seedsuserddd": 80,
	})

	// Not yet stale
	env.clock.Advance(29 * time.Second)
	done, err := env.engine.DecayVoices()
	require.NoError(t, err)
	require.True(t, done)
	voice, err := env.db.GetVoice("seedsuseraaa", ScopeCampaign, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(20), voice.Balance)

	// Stale now; one round of 15% decay
	env.clock.Advance(2 * time.Second)
	_, err = env.engine.DecayVoices()
	require.NoError(t, err)
	expected := map[string]int64{
		"seedsuseraaa": 17,
		"seedsuserbbb": 34,
		"seedsuserccc": 51,
		"seedsuserddd": 68,
	}
	for account, balance := range expected {
		voice, err := env.db.GetVoice(account, ScopeCampaign, nil)
		require.NoError(t, err)
		assert.Equal(t, balance, voice.Balance, "account %s", account)
	}

	// Within the decay interval a re-run is a no-op
	_, err = env.engine.DecayVoices()
	require.NoError(t, err)
	voice, err = env.db.GetVoice("seedsuserddd", ScopeCampaign, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(68), voice.Balance)

	// Past the interval the next round applies
	env.clock.Advance(6 * time.Second)
	_, err = env.engine.DecayVoices()
	require.NoError(t, err)
	expected = map[string]int64{
		"seedsuseraaa": 14,
		"seedsuserbbb": 28,
		"seedsuserccc": 43,
		"seedsuserddd": 57,
	}
	for account, balance := range expected {
		voice, err := env.db.GetVoice(account, ScopeCampaign, nil)
		require.NoError(t, err)
		assert.Equal(t, balance, voice.Balance, "account %s", account)
	}
}

func TestDelegateValidation(t *testing.T) {
	env := setupTestEngine(t)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
		"seedsuserccc": 30,
	})

	err := env.engine.Delegate("seedsuseraaa", "seedsuseraaa", ScopeCampaign)
	require.ErrorIs(t, err, ErrInvalidState)
	err = env.engine.Delegate("seedsuseraaa", "seedsuserbbb", "unknown")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(
		t,
		env.engine.Delegate("seedsuseraaa", "seedsuserbbb", ScopeCampaign),
	)

	// No chains: bbb has already delegated away, ccc cannot point at aaa
	err = env.engine.Delegate("seedsuserccc", "seedsuseraaa", ScopeCampaign)
	require.ErrorIs(t, err, ErrInvalidState)
	// And bbb, holding delegated voice, cannot delegate away itself
	err = env.engine.Delegate("seedsuserbbb", "seedsuserccc", ScopeCampaign)
	require.ErrorIs(t, err, ErrInvalidState)

	// Scope isolation: the same edge in another scope is fine
	require.NoError(
		t,
		env.engine.Delegate("seedsuserbbb", "seedsuserccc", ScopeMilestone),
	)

	err = env.engine.Undelegate("seedsuserccc", ScopeCampaign)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, env.engine.Undelegate("seedsuseraaa", ScopeCampaign))
}

func TestDeleteAndRestoreScope(t *testing.T) {
	env := setupTestEngine(t)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})

	err := env.engine.DeleteScope("seedsuseraaa", ScopeReferendum)
	require.ErrorIs(t, err, ErrUnauthorized)
	err = env.engine.DeleteScope(testAdmin, "unknown")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.engine.DeleteScope(testAdmin, ScopeReferendum))
	voices, err := env.db.GetVoicesByScope(ScopeReferendum, nil)
	require.NoError(t, err)
	assert.Empty(t, voices)
	// Other scopes untouched
	voices, err = env.db.GetVoicesByScope(ScopeCampaign, nil)
	require.NoError(t, err)
	assert.Len(t, voices, 2)

	require.NoError(t, env.engine.AddVoice(testAdmin, ScopeReferendum))
	voice, err := env.db.GetVoice("seedsuseraaa", ScopeReferendum, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), voice.Balance)
}

func TestEligibleVoice(t *testing.T) {
	env := setupTestEngine(t)
	env.lowerStakeMinimums(t, 1000)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	proposalID := env.createActiveProposal(t, milestoneSpec("seedsuseraaa"), 1000)
	require.NoError(t, env.engine.Favour("seedsuseraaa", proposalID, 80))

	// Committed voice still counts toward the quorum base
	eligible, err := env.engine.EligibleVoice(ScopeMilestone, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(150), eligible)
}
