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

// Favour commits up to amount of the account's available voice in favour of
// a proposal
func (e *Engine) Favour(account string, proposalID uint, amount int64) error {
	return e.castVote(account, proposalID, amount, models.VoteKindFavour)
}

// Against commits up to amount of the account's available voice against a
// proposal
func (e *Engine) Against(account string, proposalID uint, amount int64) error {
	return e.castVote(account, proposalID, amount, models.VoteKindAgainst)
}

// Neutral records a neutral vote. Neutral votes debit no voice and carry no
// weight in the favour/against accumulators; they count toward quorum
// participation only.
func (e *Engine) Neutral(account string, proposalID uint) error {
	return e.castVote(account, proposalID, 0, models.VoteKindNeutral)
}

// voiceSource is one balance a vote may draw from, in debit order: the
// voter's own balance first, then delegators in ascending account order.
type voiceSource struct {
	voice *models.Voice
}

// voiceSources resolves the balances backing an account's effective voting
// weight in a scope. Delegated weight is resolved at vote time, not cached,
// so undelegation takes effect on the next vote.
func (e *Engine) voiceSources(
	account, scope string,
	txn *database.Txn,
) ([]voiceSource, int64, error) {
	var sources []voiceSource
	var total int64
	own, err := e.db.GetVoice(account, scope, txn)
	if err != nil {
		if !errors.Is(err, models.ErrVoiceNotFound) {
			return nil, 0, err
		}
	} else {
		sources = append(sources, voiceSource{voice: own})
		total += own.Balance
	}
	delegators, err := e.db.GetDelegators(account, scope, txn)
	if err != nil {
		return nil, 0, err
	}
	for _, delegation := range delegators {
		voice, err := e.db.GetVoice(delegation.Delegator, scope, txn)
		if err != nil {
			if errors.Is(err, models.ErrVoiceNotFound) {
				continue
			}
			return nil, 0, err
		}
		sources = append(sources, voiceSource{voice: voice})
		total += voice.Balance
	}
	return sources, total, nil
}

func votable(proposal *models.Proposal) bool {
	if proposal.Stage != models.ProposalStageActive {
		return false
	}
	switch proposal.Status {
	case models.ProposalStatusTest,
		models.ProposalStatusVoting,
		models.ProposalStatusEvaluate:
		return true
	default:
		return false
	}
}

func (e *Engine) castVote(
	account string,
	proposalID uint,
	amount int64,
	kind uint8,
) error {
	if amount < 0 {
		return fmt.Errorf("invalid vote amount %d: %w", amount, ErrInvalidState)
	}
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		proposal, err := e.db.GetProposal(proposalID, txn)
		if err != nil {
			if errors.Is(err, models.ErrProposalNotFound) {
				return fmt.Errorf("proposal %d: %w", proposalID, ErrNotFound)
			}
			return err
		}
		if !votable(proposal) {
			return fmt.Errorf(
				"proposal %d is not open for voting: %w",
				proposalID,
				ErrInvalidState,
			)
		}
		// One vote per account per proposal
		if _, err := e.db.GetVote(proposalID, account, txn); err == nil {
			return fmt.Errorf(
				"account %s already voted on proposal %d: %w",
				account,
				proposalID,
				ErrInvalidState,
			)
		} else if !errors.Is(err, models.ErrVoteNotFound) {
			return err
		}
		// Delegated accounts cannot vote directly in the scope
		if _, err := e.db.GetDelegation(account, proposal.Scope, txn); err == nil {
			return fmt.Errorf(
				"account %s has delegated its voice in scope %s: %w",
				account,
				proposal.Scope,
				ErrInvalidState,
			)
		} else if !errors.Is(err, models.ErrDelegationNotFound) {
			return err
		}
		cycle, err := e.db.GetLatestCycle(txn)
		if err != nil {
			return err
		}
		vote := models.Vote{
			ProposalID: proposalID,
			Account:    account,
			Amount:     amount,
			Kind:       kind,
			Cycle:      cycle,
		}
		if err := e.db.CreateVote(&vote, txn); err != nil {
			return err
		}
		if amount > 0 {
			sources, available, err := e.voiceSources(account, proposal.Scope, txn)
			if err != nil {
				return err
			}
			if available < amount {
				return fmt.Errorf(
					"vote of %d exceeds available voice %d: %w",
					amount,
					available,
					ErrInsufficientVoice,
				)
			}
			remaining := amount
			for _, source := range sources {
				if remaining == 0 {
					break
				}
				debit := min(remaining, source.voice.Balance)
				if debit == 0 {
					continue
				}
				source.voice.Balance -= debit
				if err := e.db.SetVoice(source.voice, txn); err != nil {
					return err
				}
				err := e.db.CreateVoteDebit(&models.VoteDebit{
					VoteID:  vote.ID,
					Account: source.voice.Account,
					Scope:   proposal.Scope,
					Amount:  debit,
				}, txn)
				if err != nil {
					return err
				}
				remaining -= debit
			}
		}
		switch kind {
		case models.VoteKindFavour:
			proposal.Favour += amount
		case models.VoteKindAgainst:
			proposal.Against += amount
		}
		if err := e.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		nonNeutral := kind != models.VoteKindNeutral
		if err := e.db.RecordParticipation(account, cycle, nonNeutral, txn); err != nil {
			return err
		}
		return e.db.TouchActive(account, cycle, e.config.Clock.Now().Unix(), txn)
	})
}

// RevertVote restores the voice committed to a vote, removes the vote and
// retroactively adjusts the proposal's accumulators. Multiple reverts within
// the same cycle net out before the next tick's evaluation.
func (e *Engine) RevertVote(account string, proposalID uint) error {
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		proposal, err := e.db.GetProposal(proposalID, txn)
		if err != nil {
			if errors.Is(err, models.ErrProposalNotFound) {
				return fmt.Errorf("proposal %d: %w", proposalID, ErrNotFound)
			}
			return err
		}
		if proposal.Stage == models.ProposalStageDone {
			return fmt.Errorf(
				"proposal %d is settled: %w",
				proposalID,
				ErrInvalidState,
			)
		}
		vote, err := e.db.GetVote(proposalID, account, txn)
		if err != nil {
			if errors.Is(err, models.ErrVoteNotFound) {
				return fmt.Errorf(
					"no vote by %s on proposal %d: %w",
					account,
					proposalID,
					ErrNotFound,
				)
			}
			return err
		}
		if err := e.restoreVoteDebits(vote, txn); err != nil {
			return err
		}
		switch vote.Kind {
		case models.VoteKindFavour:
			proposal.Favour -= vote.Amount
		case models.VoteKindAgainst:
			proposal.Against -= vote.Amount
		}
		if err := e.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		return e.db.DeleteVote(vote, txn)
	})
}

// restoreVoteDebits credits each debited balance back
func (e *Engine) restoreVoteDebits(
	vote *models.Vote,
	txn *database.Txn,
) error {
	debits, err := e.db.GetVoteDebits(vote.ID, txn)
	if err != nil {
		return err
	}
	for _, debit := range debits {
		voice, err := e.db.GetVoice(debit.Account, debit.Scope, txn)
		if err != nil {
			if errors.Is(err, models.ErrVoiceNotFound) {
				// Scope was deleted while the vote was live; the voice is gone
				continue
			}
			return err
		}
		voice.Balance += debit.Amount
		if err := e.db.SetVoice(voice, txn); err != nil {
			return err
		}
	}
	return nil
}
