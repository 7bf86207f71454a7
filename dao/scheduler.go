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
	"strconv"
	"strings"
	"time"

	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/database/models"
	"github.com/seedsdao/gardend/event"
)

const jobProposalAdvance = "proposal.advance"

// InitCycle seeds the cycle counter. It may only be called once, before the
// first on-period tick. Requires admin authorization.
func (e *Engine) InitCycle(auth string, startCycle uint64) error {
	if err := e.requireAdmin(auth); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.config.Clock.Now().Unix()
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		latest, err := e.db.GetLatestCycle(txn)
		if err != nil {
			return err
		}
		if latest > 0 {
			return fmt.Errorf("cycle counter already seeded: %w", ErrAlreadyProcessed)
		}
		if _, err := e.db.GetCycleStats(0, txn); err == nil {
			return fmt.Errorf("cycle counter already seeded: %w", ErrAlreadyProcessed)
		} else if !errors.Is(err, models.ErrCycleNotFound) {
			return err
		}
		return e.db.SetCycleStats(&models.CycleStats{
			CycleNumber: startCycle,
			StartTime:   now,
			EndTime:     now + e.config.CyclePeriod,
		}, txn)
	})
}

// OnPeriod runs one scheduler tick: settle the previous cycle's participation
// into reputation, advance the cycle counter, drive every live proposal one
// step through its lifecycle and refresh the DHO distribution snapshot.
// Failures on individual proposals or DHO entries are logged and isolated;
// the tick itself only fails on cycle bookkeeping errors. The cycle counter
// commits before proposal advancement, so if a whole batch fails the counter
// is already advanced and the persisted batch cursor resumes the unprocessed
// proposals on the next tick; the per-proposal LastRanCycle guard keeps that
// resume from double-advancing anything.
func (e *Engine) OnPeriod() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.config.Clock.Now().Unix()
	if err := e.settleParticipation(); err != nil {
		return err
	}
	cycle, err := e.startCycle(now)
	if err != nil {
		return err
	}
	if err := e.advanceProposals(cycle, now); err != nil {
		return err
	}
	// DHO maintenance failures don't abort the tick
	txn := e.db.Transaction()
	err = txn.Do(func(txn *database.Txn) error {
		if err := e.cleanDhoVotes(now, txn); err != nil {
			return err
		}
		return e.calcDhoDists(txn)
	})
	if err != nil {
		e.config.Logger.Error(
			"dho maintenance failed",
			"component", "dao",
			"error", err,
		)
	}
	open, err := e.db.CountOpenProposals(nil)
	if err != nil {
		return err
	}
	e.metrics.openProposals.Set(float64(open))
	e.metrics.cyclesTotal.Inc()
	return nil
}

// settleParticipation converts the closing cycle's participation rows into
// reputation awards and clears the per-cycle tables. Each proposal voted
// non-neutrally earns one reputation, plus one for having participated at
// all.
func (e *Engine) settleParticipation() error {
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		participants, err := e.db.GetParticipants(txn)
		if err != nil {
			return err
		}
		for _, participant := range participants {
			reputation := participant.NonNeutral
			if participant.Count > 0 {
				reputation++
			}
			if reputation == 0 {
				continue
			}
			err := e.config.Accounts.AddReputation(
				participant.Account,
				reputation,
			)
			if err != nil {
				e.config.Logger.Warn(
					"reputation award failed",
					"component", "dao",
					"account", participant.Account,
					"error", err,
				)
			}
		}
		if err := e.db.ClearParticipants(txn); err != nil {
			return err
		}
		return e.db.ClearActives(txn)
	})
}

// startCycle advances the cycle counter and records the new cycle window
func (e *Engine) startCycle(now int64) (uint64, error) {
	var cycle uint64
	txn := e.db.Transaction()
	err := txn.Do(func(txn *database.Txn) error {
		latest, err := e.db.GetLatestCycle(txn)
		if err != nil {
			return err
		}
		cycle = latest + 1
		return e.db.SetCycleStats(&models.CycleStats{
			CycleNumber: cycle,
			StartTime:   now,
			EndTime:     now + e.config.CyclePeriod,
		}, txn)
	})
	if err != nil {
		return 0, err
	}
	e.publish(event.CycleStartedEventType, event.CycleStartedEvent{
		CycleNumber: cycle,
		StartTime:   time.Unix(now, 0),
		EndTime:     time.Unix(now+e.config.CyclePeriod, 0),
	})
	return cycle, nil
}

// advanceProposals walks every proposal in batches, resuming from the
// persisted cursor if a previous tick was interrupted. Each proposal is
// advanced inside its own transaction so one failure never blocks the rest
// of the pass.
func (e *Engine) advanceProposals(cycle uint64, now int64) error {
	batchSize, err := e.SettingInt(SettingBatchSize, nil)
	if err != nil {
		return err
	}
	cursor, err := e.db.GetBatchCursor(jobProposalAdvance, nil)
	if err != nil {
		return err
	}
	for {
		proposals, err := e.db.GetProposalsAfter(uint(cursor), int(batchSize), nil)
		if err != nil {
			return err
		}
		for _, proposal := range proposals {
			cursor = uint64(proposal.ID)
			if err := e.advanceProposal(proposal.ID, cycle, now); err != nil {
				e.config.Logger.Error(
					"proposal advance failed",
					"component", "dao",
					"proposal_id", proposal.ID,
					"cycle", cycle,
					"error", err,
				)
			}
		}
		done := len(proposals) < int(batchSize)
		if done {
			cursor = 0
		}
		if err := e.db.SetBatchCursor(jobProposalAdvance, cursor, now, nil); err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// advanceProposal drives one proposal one lifecycle step
func (e *Engine) advanceProposal(proposalID uint, cycle uint64, now int64) error {
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		proposal, err := e.db.GetProposal(proposalID, txn)
		if err != nil {
			return err
		}
		if proposal.Stage == models.ProposalStageDone {
			return nil
		}
		if proposal.LastRanCycle >= cycle {
			// Already processed this cycle; an interrupted pass resumed
			return nil
		}
		oldStatus := proposal.Status
		oldStage := proposal.Stage
		switch proposal.Stage {
		case models.ProposalStageStaged:
			if err := e.activateIfStaked(proposal, txn); err != nil {
				return err
			}
		case models.ProposalStageActive:
			proposal.Age++
			if err := e.evaluateActive(proposal, cycle, now, txn); err != nil {
				return err
			}
		}
		proposal.LastRanCycle = cycle
		if err := e.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		if proposal.Status != oldStatus || proposal.Stage != oldStage {
			e.publish(event.ProposalStatusEventType, event.ProposalStatusEvent{
				ProposalID: proposal.ID,
				OldStatus:  oldStatus,
				NewStatus:  proposal.Status,
				Stage:      proposal.Stage,
				Cycle:      cycle,
			})
		}
		return nil
	})
}

// activateIfStaked opens the voting window once the minimum stake is
// reached; otherwise the proposal stays staged another cycle
func (e *Engine) activateIfStaked(
	proposal *models.Proposal,
	txn *database.Txn,
) error {
	minimum, err := e.stakeMinimum(proposal.Type, txn)
	if err != nil {
		return err
	}
	if proposal.Staked < minimum {
		return nil
	}
	proposal.Stage = models.ProposalStageActive
	proposal.Age = 0
	proposal.Status = models.ProposalStatusVoting
	if proposal.Type == models.ProposalTypeReferendum {
		aux, err := e.db.GetReferendumAux(proposal.ID, txn)
		if err != nil {
			return err
		}
		if aux.TestCycles > 0 {
			proposal.Status = models.ProposalStatusTest
		}
	}
	return nil
}

// evaluateActive advances an active proposal: test window countdown,
// threshold evaluation and payout streaming
func (e *Engine) evaluateActive(
	proposal *models.Proposal,
	cycle uint64,
	now int64,
	txn *database.Txn,
) error {
	switch proposal.Status {
	case models.ProposalStatusTest:
		aux, err := e.db.GetReferendumAux(proposal.ID, txn)
		if err != nil {
			return err
		}
		if proposal.Age >= aux.TestCycles {
			proposal.Status = models.ProposalStatusEvaluate
			// Referenda take effect tentatively while under evaluation; a
			// later rejection restores the previous value
			if err := e.applyReferendum(aux, txn); err != nil {
				return err
			}
		}
		return nil
	case models.ProposalStatusVoting, models.ProposalStatusEvaluate:
		return e.evaluateThresholds(proposal, cycle, now, txn)
	case models.ProposalStatusPassed:
		// Only streamed campaign payouts keep a passed proposal active
		if proposal.Type == models.ProposalTypeCampaign {
			return e.streamCampaignPayout(proposal, cycle, now, txn)
		}
		return nil
	default:
		return nil
	}
}

// outcome of one threshold check
type voteOutcome struct {
	quorumMet bool
	unityMet  bool
}

func (e *Engine) checkThresholds(
	proposal *models.Proposal,
	txn *database.Txn,
) (voteOutcome, error) {
	var outcome voteOutcome
	quorum, err := e.SettingInt(SettingPropQuorum, txn)
	if err != nil {
		return outcome, err
	}
	majority, err := e.SettingInt(SettingPropMajority, txn)
	if err != nil {
		return outcome, err
	}
	eligible, err := e.EligibleVoice(proposal.Scope, txn)
	if err != nil {
		return outcome, err
	}
	participating := proposal.Favour + proposal.Against
	outcome.quorumMet = eligible > 0 &&
		participating*100 >= quorum*eligible
	outcome.unityMet = participating > 0 &&
		proposal.Favour*100 >= majority*participating
	return outcome, nil
}

// evaluateThresholds decides whether a proposal in its voting or evaluate
// window passes, fails or keeps waiting
func (e *Engine) evaluateThresholds(
	proposal *models.Proposal,
	cycle uint64,
	now int64,
	txn *database.Txn,
) error {
	deadline, err := e.evaluationDeadline(proposal, txn)
	if err != nil {
		return err
	}
	outcome, err := e.checkThresholds(proposal, txn)
	if err != nil {
		return err
	}
	if proposal.Status == models.ProposalStatusEvaluate &&
		!(outcome.quorumMet && outcome.unityMet) {
		// The thresholds must hold for the whole evaluation window
		return e.rejectProposal(proposal, outcome, cycle, now, txn)
	}
	if proposal.Age < deadline {
		if proposal.Status == models.ProposalStatusVoting &&
			proposal.Type != models.ProposalTypeReferendum {
			// Non-referendum proposals enter their evaluation window one
			// cycle after activation
			if proposal.Age+1 >= deadline {
				proposal.Status = models.ProposalStatusEvaluate
			}
		}
		return nil
	}
	if outcome.quorumMet && outcome.unityMet {
		return e.passProposal(proposal, cycle, now, txn)
	}
	return e.rejectProposal(proposal, outcome, cycle, now, txn)
}

// evaluationDeadline returns the age at which a proposal's outcome is
// decided: referenda wait out their test and evaluation windows, invites
// their configured age window, everything else is decided on the second
// tick after activation
func (e *Engine) evaluationDeadline(
	proposal *models.Proposal,
	txn *database.Txn,
) (uint64, error) {
	switch proposal.Type {
	case models.ProposalTypeReferendum:
		aux, err := e.db.GetReferendumAux(proposal.ID, txn)
		if err != nil {
			return 0, err
		}
		return aux.TestCycles + aux.EvalCycles, nil
	case models.ProposalTypeInvite:
		aux, err := e.db.GetInviteAux(proposal.ID, txn)
		if err != nil {
			return 0, err
		}
		return max(aux.MaxAge, 1), nil
	default:
		return 1, nil
	}
}

// passProposal applies a proposal's type-specific side effects exactly once
// and settles the stake. Campaign funding stays active to stream its payout
// schedule; everything else is terminal.
func (e *Engine) passProposal(
	proposal *models.Proposal,
	cycle uint64,
	now int64,
	txn *database.Txn,
) error {
	if proposal.Executed {
		return fmt.Errorf(
			"proposal %d already executed: %w",
			proposal.ID,
			ErrAlreadyProcessed,
		)
	}
	proposal.Status = models.ProposalStatusPassed
	proposal.PassedCycle = cycle
	proposal.Executed = true
	e.metrics.proposalsPassed.Inc()
	switch proposal.Type {
	case models.ProposalTypeReferendum:
		// The tentative value from the evaluate transition becomes final;
		// nothing to re-apply unless the test window was skipped
		aux, err := e.db.GetReferendumAux(proposal.ID, txn)
		if err != nil {
			return err
		}
		if !aux.Applied {
			if err := e.applyReferendum(aux, txn); err != nil {
				return err
			}
		}
		return e.finishProposal(proposal, true, voteOutcome{}, now, txn)
	case models.ProposalTypeAlliance, models.ProposalTypeMilestone:
		if err := e.createGrantLock(proposal, now, txn); err != nil {
			return err
		}
		return e.finishProposal(proposal, true, voteOutcome{}, now, txn)
	case models.ProposalTypeInvite:
		if err := e.registerInviteCampaign(proposal, txn); err != nil {
			return err
		}
		return e.finishProposal(proposal, true, voteOutcome{}, now, txn)
	case models.ProposalTypeCampaign:
		// First tranche pays immediately; the rest stream on later ticks
		return e.streamCampaignPayout(proposal, cycle, now, txn)
	default:
		return fmt.Errorf("unknown proposal type %d: %w", proposal.Type, ErrInvalidState)
	}
}

// rejectProposal settles a failed proposal: restore any tentatively applied
// referendum value, void pending escrow locks and settle the stake
func (e *Engine) rejectProposal(
	proposal *models.Proposal,
	outcome voteOutcome,
	cycle uint64,
	now int64,
	txn *database.Txn,
) error {
	proposal.Status = models.ProposalStatusRejected
	e.metrics.proposalsRejected.Inc()
	if proposal.Type == models.ProposalTypeReferendum {
		aux, err := e.db.GetReferendumAux(proposal.ID, txn)
		if err != nil {
			return err
		}
		if aux.Applied {
			err := e.setSettingInt(aux.SettingName, aux.PreviousValue, txn)
			if err != nil {
				return err
			}
			aux.Applied = false
			if err := e.db.SetReferendumAux(aux, txn); err != nil {
				return err
			}
		}
	}
	if err := e.voidPendingLocks(proposal, now, txn); err != nil {
		return err
	}
	return e.finishProposal(proposal, false, outcome, now, txn)
}

// finishProposal moves a proposal to its terminal stage, settles the stake
// and drops its vote rows
func (e *Engine) finishProposal(
	proposal *models.Proposal,
	passed bool,
	outcome voteOutcome,
	now int64,
	txn *database.Txn,
) error {
	proposal.Stage = models.ProposalStageDone
	if err := e.settleStake(proposal, passed, outcome, txn); err != nil {
		return err
	}
	votes, err := e.db.GetVotesByProposal(proposal.ID, txn)
	if err != nil {
		return err
	}
	for _, vote := range votes {
		if err := e.db.DeleteVote(vote, txn); err != nil {
			return err
		}
	}
	return nil
}

// settleStake resolves the creator's stake exactly once, at the transition
// to the terminal stage: passed proposals refund in full, proposals that
// reached unity without quorum refund a configured fraction and burn the
// rest, everything else burns the full stake.
func (e *Engine) settleStake(
	proposal *models.Proposal,
	passed bool,
	outcome voteOutcome,
	txn *database.Txn,
) error {
	staked := proposal.Staked
	if staked == 0 {
		return nil
	}
	proposal.Staked = 0
	if passed {
		return e.config.Token.Transfer(
			e.config.SelfAccount,
			proposal.Creator,
			staked,
			proposal.Symbol,
			fmt.Sprintf("stake refund, proposal %d", proposal.ID),
		)
	}
	if outcome.unityMet && !outcome.quorumMet {
		refundFraction, err := e.SettingFloat(SettingRefundOnUnity, txn)
		if err != nil {
			return err
		}
		refund := int64(float64(staked) * refundFraction)
		if refund > 0 {
			err := e.config.Token.Transfer(
				e.config.SelfAccount,
				proposal.Creator,
				refund,
				proposal.Symbol,
				fmt.Sprintf("partial stake refund, proposal %d", proposal.ID),
			)
			if err != nil {
				return err
			}
		}
		staked -= refund
	}
	if staked > 0 {
		return e.config.Token.Burn(
			e.config.SelfAccount,
			staked,
			proposal.Symbol,
			fmt.Sprintf("stake burn, proposal %d", proposal.ID),
		)
	}
	return nil
}

// applyReferendum puts a referendum's new value into effect, capturing the
// previous value for a possible rollback
func (e *Engine) applyReferendum(
	aux *models.ReferendumAux,
	txn *database.Txn,
) error {
	previous, err := e.SettingInt(aux.SettingName, txn)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	aux.PreviousValue = previous
	aux.Applied = true
	if err := e.setSettingInt(aux.SettingName, aux.NewValue, txn); err != nil {
		return err
	}
	return e.db.SetReferendumAux(aux, txn)
}

// createGrantLock funds an escrow lock for the full grant quantity and
// mirrors it locally so the golive trigger can be reconciled idempotently
func (e *Engine) createGrantLock(
	proposal *models.Proposal,
	now int64,
	txn *database.Txn,
) error {
	aux, err := e.db.GetGrantAux(proposal.ID, txn)
	if err != nil {
		return err
	}
	lockID, err := e.config.Escrow.CreateLock(
		proposal.Fund,
		aux.Recipient,
		proposal.Quantity,
		proposal.Symbol,
		fmt.Sprintf("grant, proposal %d", proposal.ID),
	)
	if err != nil {
		return err
	}
	aux.LockID = &lockID
	if err := e.db.SetGrantAux(aux, txn); err != nil {
		return err
	}
	return e.db.SetEscrowLock(&models.EscrowLock{
		LockID:     lockID,
		ProposalID: proposal.ID,
		Recipient:  aux.Recipient,
		Quantity:   proposal.Quantity,
		Symbol:     proposal.Symbol,
		State:      models.EscrowLockPending,
		UpdatedAt:  now,
	}, txn)
}

// registerInviteCampaign registers a passed invite proposal with the
// onboarding collaborator
func (e *Engine) registerInviteCampaign(
	proposal *models.Proposal,
	txn *database.Txn,
) error {
	aux, err := e.db.GetInviteAux(proposal.ID, txn)
	if err != nil {
		return err
	}
	campaignID, err := e.config.Onboarding.CreateCampaign(
		aux.RewardOwner,
		aux.MaxAmountPerInvite,
		aux.Planted,
		aux.Reward,
		proposal.Symbol,
	)
	if err != nil {
		return err
	}
	aux.CampaignID = &campaignID
	return e.db.SetInviteAux(aux, txn)
}

// parsePayPercentages parses a comma-separated payout schedule like
// "25,25,25,25" into integer percentages
func parsePayPercentages(schedule string) ([]int64, error) {
	if schedule == "" {
		schedule = DefaultPayPercentages
	}
	parts := strings.Split(schedule, ",")
	percentages := make([]int64, 0, len(parts))
	var total int64
	for _, part := range parts {
		pct, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || pct <= 0 {
			return nil, fmt.Errorf(
				"invalid pay percentage %q: %w",
				part,
				ErrInvalidState,
			)
		}
		percentages = append(percentages, pct)
		total += pct
	}
	if total != 100 {
		return nil, fmt.Errorf(
			"pay percentages sum to %d, want 100: %w",
			total,
			ErrInvalidState,
		)
	}
	return percentages, nil
}

// streamCampaignPayout pays the next tranche of a passed campaign. The
// quorum is re-checked each tick so vote reversion halts the stream; when
// the final tranche lands the proposal settles.
func (e *Engine) streamCampaignPayout(
	proposal *models.Proposal,
	cycle uint64,
	now int64,
	txn *database.Txn,
) error {
	aux, err := e.db.GetGrantAux(proposal.ID, txn)
	if err != nil {
		return err
	}
	percentages, err := parsePayPercentages(aux.PayPercentages)
	if err != nil {
		return err
	}
	if aux.PaidCycles >= uint64(len(percentages)) {
		return e.finishProposal(proposal, true, voteOutcome{}, now, txn)
	}
	outcome, err := e.checkThresholds(proposal, txn)
	if err != nil {
		return err
	}
	if !outcome.quorumMet {
		// Support dropped mid-stream; the partial payout stands but
		// nothing further pays out
		return e.rejectProposal(proposal, outcome, cycle, now, txn)
	}
	tranche := proposal.Quantity * percentages[aux.PaidCycles] / 100
	err = e.config.Token.Transfer(
		proposal.Fund,
		aux.Recipient,
		tranche,
		proposal.Symbol,
		fmt.Sprintf("campaign payout %d/%d, proposal %d",
			aux.PaidCycles+1, len(percentages), proposal.ID),
	)
	if err != nil {
		return err
	}
	aux.CurrentPayout += tranche
	aux.PaidCycles++
	if err := e.db.SetGrantAux(aux, txn); err != nil {
		return err
	}
	e.metrics.payoutsTotal.Inc()
	e.publish(event.ProposalPayoutEventType, event.ProposalPayoutEvent{
		ProposalID: proposal.ID,
		Recipient:  aux.Recipient,
		Amount:     tranche,
		Symbol:     proposal.Symbol,
		Cycle:      cycle,
	})
	if aux.PaidCycles >= uint64(len(percentages)) {
		return e.finishProposal(proposal, true, voteOutcome{}, now, txn)
	}
	return nil
}

// voidPendingLocks marks any pending escrow locks of a failed proposal so a
// late golive trigger becomes a no-op, and cancels them with the escrow
// collaborator
func (e *Engine) voidPendingLocks(
	proposal *models.Proposal,
	now int64,
	txn *database.Txn,
) error {
	locks, err := e.db.GetEscrowLocksByProposal(proposal.ID, txn)
	if err != nil {
		return err
	}
	for _, lock := range locks {
		if lock.State != models.EscrowLockPending {
			continue
		}
		lock.State = models.EscrowLockVoided
		lock.UpdatedAt = now
		if err := e.db.SetEscrowLock(lock, txn); err != nil {
			return err
		}
		err := e.config.Escrow.CancelLock(lock.LockID, proposal.Fund)
		if err != nil {
			e.config.Logger.Warn(
				"escrow lock cancel failed",
				"component", "dao",
				"lock_id", lock.LockID,
				"error", err,
			)
		}
	}
	return nil
}
