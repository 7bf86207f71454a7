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
	"errors"
	"fmt"

	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/database/models"
)

// dhoVoteBasis is the fixed total that point allocations are normalized to
// before scaling into vote weight
const dhoVoteBasis = 1000

// DhoAllocation is one entry of a DHO vote: points expressing the relative
// share of the voter's weight the named DHO should receive
type DhoAllocation struct {
	Dho    string
	Points int64
}

// CreateDho registers a DHO as eligible for distributions. Requires admin
// authorization. Re-creating a removed DHO restores its eligibility without
// resetting accumulated points.
func (e *Engine) CreateDho(auth, org string) error {
	if err := e.requireAdmin(auth); err != nil {
		return err
	}
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		dho, err := e.db.GetDho(org, txn)
		if err != nil {
			if !errors.Is(err, models.ErrDhoNotFound) {
				return err
			}
			dho = &models.Dho{OrgName: org}
		}
		dho.Eligible = true
		return e.db.SetDho(dho, txn)
	})
}

// RemoveDho removes a DHO from distribution eligibility and deletes its
// votes. Requires admin authorization. The DHO's accumulated points remain so
// that other DHOs' total-percentage shares are unchanged; only the
// renormalized distribution excludes it.
func (e *Engine) RemoveDho(auth, org string) error {
	if err := e.requireAdmin(auth); err != nil {
		return err
	}
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		dho, err := e.db.GetDho(org, txn)
		if err != nil {
			if errors.Is(err, models.ErrDhoNotFound) {
				return fmt.Errorf("dho %s: %w", org, ErrNotFound)
			}
			return err
		}
		dho.Eligible = false
		if err := e.db.SetDho(dho, txn); err != nil {
			return err
		}
		return e.db.DeleteDhoVotesByDho(org, txn)
	})
}

// VoteDhos allocates the account's full available DHO-scope voice across the
// given DHOs in proportion to their point weights. The call is a recast: any
// prior allocation by the account is withdrawn first, so re-voting replaces
// rather than adds. Delegated accounts are rejected the same as direct
// proposal votes.
func (e *Engine) VoteDhos(account string, allocations []DhoAllocation) error {
	if len(allocations) == 0 {
		return fmt.Errorf("empty allocation: %w", ErrInvalidState)
	}
	var pointTotal int64
	for _, allocation := range allocations {
		if allocation.Points <= 0 {
			return fmt.Errorf(
				"allocation points must be positive: %w",
				ErrInvalidState,
			)
		}
		pointTotal += allocation.Points
	}
	now := e.config.Clock.Now().Unix()
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		if _, err := e.db.GetDelegation(account, ScopeDho, txn); err == nil {
			return fmt.Errorf(
				"account %s has delegated its voice in scope %s: %w",
				account,
				ScopeDho,
				ErrInvalidState,
			)
		} else if !errors.Is(err, models.ErrDelegationNotFound) {
			return err
		}
		dhos := make(map[string]*models.Dho, len(allocations))
		for _, allocation := range allocations {
			dho, err := e.db.GetDho(allocation.Dho, txn)
			if err != nil {
				if errors.Is(err, models.ErrDhoNotFound) {
					return fmt.Errorf("dho %s: %w", allocation.Dho, ErrNotFound)
				}
				return err
			}
			if !dho.Eligible {
				return fmt.Errorf(
					"dho %s is not eligible: %w",
					allocation.Dho,
					ErrInvalidState,
				)
			}
			if _, ok := dhos[allocation.Dho]; ok {
				return fmt.Errorf(
					"duplicate allocation for dho %s: %w",
					allocation.Dho,
					ErrInvalidState,
				)
			}
			dhos[allocation.Dho] = dho
		}
		// Recast: withdraw the account's prior allocation
		prior, err := e.db.GetDhoVotesByAccount(account, txn)
		if err != nil {
			return err
		}
		for _, vote := range prior {
			if dho, ok := dhos[vote.Dho]; ok {
				dho.Points -= vote.Points
			} else {
				other, err := e.db.GetDho(vote.Dho, txn)
				if err != nil {
					if errors.Is(err, models.ErrDhoNotFound) {
						continue
					}
					return err
				}
				other.Points -= vote.Points
				if err := e.db.SetDho(other, txn); err != nil {
					return err
				}
			}
			if err := e.db.DeleteDhoVote(vote, txn); err != nil {
				return err
			}
		}
		_, available, err := e.voiceSources(account, ScopeDho, txn)
		if err != nil {
			return err
		}
		if available == 0 {
			return fmt.Errorf(
				"account %s has no voice in scope %s: %w",
				account,
				ScopeDho,
				ErrInsufficientVoice,
			)
		}
		for _, allocation := range allocations {
			normalized := allocation.Points * dhoVoteBasis / pointTotal
			weight := available * normalized / dhoVoteBasis
			if weight == 0 {
				continue
			}
			err := e.db.CreateDhoVote(&models.DhoVote{
				Account: account,
				Dho:     allocation.Dho,
				Points:  weight,
				CastAt:  now,
			}, txn)
			if err != nil {
				return err
			}
			dho := dhos[allocation.Dho]
			dho.Points += weight
			if err := e.db.SetDho(dho, txn); err != nil {
				return err
			}
		}
		cycle, err := e.db.GetLatestCycle(txn)
		if err != nil {
			return err
		}
		if err := e.db.RecordParticipation(account, cycle, true, txn); err != nil {
			return err
		}
		return e.db.TouchActive(account, cycle, now, txn)
	})
}

// DhoCleanVotes expires DHO votes older than the recast window, returning
// their weight to the owning DHO's point total. A vote recast before expiry
// was already replaced and is untouched here.
func (e *Engine) DhoCleanVotes() error {
	now := e.config.Clock.Now().Unix()
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		return e.cleanDhoVotes(now, txn)
	})
}

func (e *Engine) cleanDhoVotes(now int64, txn *database.Txn) error {
	recastWindow, err := e.SettingInt(SettingDhoVoteRecast, txn)
	if err != nil {
		return err
	}
	expired, err := e.db.GetDhoVotesBefore(now-recastWindow, txn)
	if err != nil {
		return err
	}
	for _, vote := range expired {
		dho, err := e.db.GetDho(vote.Dho, txn)
		if err != nil {
			if !errors.Is(err, models.ErrDhoNotFound) {
				return err
			}
		} else {
			dho.Points -= vote.Points
			if err := e.db.SetDho(dho, txn); err != nil {
				return err
			}
		}
		if err := e.db.DeleteDhoVote(vote, txn); err != nil {
			return err
		}
	}
	return nil
}

// DhoCalcDists recomputes the distribution snapshot. Total percentages are
// shares of all DHO points including removed DHOs that still hold points;
// distribution percentages renormalize over eligible DHOs only, so they sum
// to one whenever any eligible DHO holds points.
func (e *Engine) DhoCalcDists() error {
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		return e.calcDhoDists(txn)
	})
}

func (e *Engine) calcDhoDists(txn *database.Txn) error {
	dhos, err := e.db.GetDhos(txn)
	if err != nil {
		return err
	}
	var totalAll, totalEligible int64
	for _, dho := range dhos {
		totalAll += dho.Points
		if dho.Eligible {
			totalEligible += dho.Points
		}
	}
	var shares []*models.DhoShare
	for _, dho := range dhos {
		if !dho.Eligible {
			continue
		}
		share := &models.DhoShare{Dho: dho.OrgName}
		if totalAll > 0 {
			share.TotalPercentage = float64(dho.Points) / float64(totalAll)
		}
		if totalEligible > 0 {
			share.DistPercentage = float64(dho.Points) / float64(totalEligible)
		}
		shares = append(shares, share)
	}
	return e.db.ReplaceDhoShares(shares, txn)
}

// GetDhoShares returns the current distribution snapshot
func (e *Engine) GetDhoShares() ([]*models.DhoShare, error) {
	return e.db.GetDhoShares(nil)
}
