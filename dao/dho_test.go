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

	"github.com/seedsdao/gardend/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRemoveDhoAdmin(t *testing.T) {
	env := setupTestEngine(t)

	err := env.engine.CreateDho("seedsuseraaa", "hyphadao")
	require.ErrorIs(t, err, ErrUnauthorized)
	err = env.engine.RemoveDho(testAdmin, "hyphadao")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.engine.CreateDho(testAdmin, "hyphadao"))
	dho, err := env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.True(t, dho.Eligible)

	require.NoError(t, env.engine.RemoveDho(testAdmin, "hyphadao"))
	dho, err = env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.False(t, dho.Eligible)
}

func TestVoteDhosAllocation(t *testing.T) {
	env := setupTestEngine(t)
	env.seedVoices(t, map[string]int64{"seedsuseraaa": 100})
	require.NoError(t, env.engine.CreateDho(testAdmin, "hyphadao"))
	require.NoError(t, env.engine.CreateDho(testAdmin, "seedslibrary"))

	require.NoError(t, env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "hyphadao", Points: 60},
		{Dho: "seedslibrary", Points: 40},
	}))
	dho, err := env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(60), dho.Points)
	dho, err = env.db.GetDho("seedslibrary", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(40), dho.Points)

	// Re-voting is a recast, not an addition
	require.NoError(t, env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "hyphadao", Points: 1},
	}))
	dho, err = env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), dho.Points)
	dho, err = env.db.GetDho("seedslibrary", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dho.Points)
	votes, err := env.db.GetDhoVotesByDho("seedslibrary", nil)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestVoteDhosValidation(t *testing.T) {
	env := setupTestEngine(t)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 50,
	})
	require.NoError(t, env.engine.CreateDho(testAdmin, "hyphadao"))

	err := env.engine.VoteDhos("seedsuseraaa", nil)
	require.ErrorIs(t, err, ErrInvalidState)
	err = env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "hyphadao", Points: 0},
	})
	require.ErrorIs(t, err, ErrInvalidState)
	err = env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "unknown", Points: 10},
	})
	require.ErrorIs(t, err, ErrNotFound)
	err = env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "hyphadao", Points: 10},
		{Dho: "hyphadao", Points: 20},
	})
	require.ErrorIs(t, err, ErrInvalidState)

	// Removed DHOs accept no further votes
	require.NoError(t, env.engine.CreateDho(testAdmin, "gratitude"))
	require.NoError(t, env.engine.RemoveDho(testAdmin, "gratitude"))
	err = env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "gratitude", Points: 10},
	})
	require.ErrorIs(t, err, ErrInvalidState)

	// Delegated accounts vote through their delegate
	require.NoError(
		t,
		env.engine.Delegate("seedsuseraaa", "seedsuserbbb", ScopeDho),
	)
	err = env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "hyphadao", Points: 10},
	})
	require.ErrorIs(t, err, ErrInvalidState)

	// No voice, no vote
	err = env.engine.VoteDhos("seedsuserzzz", []DhoAllocation{
		{Dho: "hyphadao", Points: 10},
	})
	require.ErrorIs(t, err, ErrInsufficientVoice)
}

func TestDhoCleanVotes(t *testing.T) {
	env := setupTestEngine(t)
	require.NoError(t, env.engine.ConfigureInt(testAdmin, SettingDhoVoteRecast, 100))
	env.seedVoices(t, map[string]int64{"seedsuseraaa": 100})
	require.NoError(t, env.engine.CreateDho(testAdmin, "hyphadao"))
	require.NoError(t, env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "hyphadao", Points: 10},
	}))

	// Within the recast window the vote stands
	env.clock.Advance(99 * time.Second)
	require.NoError(t, env.engine.DhoCleanVotes())
	dho, err := env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), dho.Points)

	env.clock.Advance(2 * time.Second)
	require.NoError(t, env.engine.DhoCleanVotes())
	dho, err = env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dho.Points)
	votes, err := env.db.GetDhoVotesByDho("hyphadao", nil)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestDhoDistributionSnapshot(t *testing.T) {
	env := setupTestEngine(t)
	for org, points := range map[string]int64{
		"hyphadao":     3650,
		"seedslibrary": 1600,
		"gratitude":    600,
	} {
		require.NoError(t, env.db.SetDho(&models.Dho{
			OrgName:  org,
			Points:   points,
			Eligible: true,
		}, nil))
	}
	// A removed DHO keeps its points but drops out of the distribution
	require.NoError(t, env.db.SetDho(&models.Dho{
		OrgName:  "oldallies",
		Points:   150,
		Eligible: false,
	}, nil))

	require.NoError(t, env.engine.DhoCalcDists())
	shares, err := env.engine.GetDhoShares()
	require.NoError(t, err)
	require.Len(t, shares, 3)

	byDho := make(map[string]*models.DhoShare)
	var distTotal float64
	for _, share := range shares {
		byDho[share.Dho] = share
		distTotal += share.DistPercentage
	}
	// Raw shares are over all points including the removed DHO's
	assert.InDelta(t, 3650.0/6000.0, byDho["hyphadao"].TotalPercentage, 1e-9)
	assert.InDelta(t, 1600.0/6000.0, byDho["seedslibrary"].TotalPercentage, 1e-9)
	assert.InDelta(t, 600.0/6000.0, byDho["gratitude"].TotalPercentage, 1e-9)
	// Distribution shares renormalize over eligible DHOs and sum to one
	assert.InDelta(t, 3650.0/5850.0, byDho["hyphadao"].DistPercentage, 1e-9)
	assert.InDelta(t, 1600.0/5850.0, byDho["seedslibrary"].DistPercentage, 1e-9)
	assert.InDelta(t, 600.0/5850.0, byDho["gratitude"].DistPercentage, 1e-9)
	assert.InDelta(t, 1.0, distTotal, 1e-9)
}

func TestRemoveDhoDropsVotesKeepsOtherShares(t *testing.T) {
	env := setupTestEngine(t)
	env.seedVoices(t, map[string]int64{
		"seedsuseraaa": 100,
		"seedsuserbbb": 300,
	})
	require.NoError(t, env.engine.CreateDho(testAdmin, "hyphadao"))
	require.NoError(t, env.engine.CreateDho(testAdmin, "seedslibrary"))
	require.NoError(t, env.engine.VoteDhos("seedsuseraaa", []DhoAllocation{
		{Dho: "hyphadao", Points: 1},
	}))
	require.NoError(t, env.engine.VoteDhos("seedsuserbbb", []DhoAllocation{
		{Dho: "seedslibrary", Points: 1},
	}))

	require.NoError(t, env.engine.RemoveDho(testAdmin, "hyphadao"))
	votes, err := env.db.GetDhoVotesByDho("hyphadao", nil)
	require.NoError(t, err)
	assert.Empty(t, votes)
	dho, err := env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), dho.Points)

	require.NoError(t, env.engine.DhoCalcDists())
	shares, err := env.engine.GetDhoShares()
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "seedslibrary", shares[0].Dho)
	assert.InDelta(t, 300.0/400.0, shares[0].TotalPercentage, 1e-9)
	assert.InDelta(t, 1.0, shares[0].DistPercentage, 1e-9)

	// Re-creating restores eligibility with the accumulated points intact
	require.NoError(t, env.engine.CreateDho(testAdmin, "hyphadao"))
	dho, err = env.db.GetDho("hyphadao", nil)
	require.NoError(t, err)
	assert.True(t, dho.Eligible)
	assert.Equal(t, int64(100), dho.Points)
}
