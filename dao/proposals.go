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

	"github.com/seedsdao/gardend/contracts"
	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/database/blob"
	"github.com/seedsdao/gardend/database/models"
)

// DefaultPayPercentages is the payout schedule used by campaign funding
// proposals that don't specify one
const DefaultPayPercentages = "25,25,25,25"

// ProposalSpec carries the inputs of a create or update action. Only the
// fields matching the proposal type are consulted.
type ProposalSpec struct {
	Type     uint8
	Creator  string
	Fund     string
	Quantity int64

	// Display metadata, stored in the blob document store
	Title       string
	Summary     string
	Description string
	Image       string
	URL         string

	// Referendum fields
	SettingName string
	NewValue    int64
	TestCycles  uint64
	EvalCycles  uint64

	// Grant fields
	Recipient      string
	PayPercentages string

	// Invite campaign fields
	MaxAmountPerInvite int64
	Planted            int64
	Reward             int64
	RewardOwner        string
	MaxAge             uint64
}

func proposalScope(proposalType uint8) (string, error) {
	switch proposalType {
	case models.ProposalTypeReferendum:
		return ScopeReferendum, nil
	case models.ProposalTypeAlliance:
		return ScopeAlliance, nil
	case models.ProposalTypeCampaign, models.ProposalTypeInvite:
		return ScopeCampaign, nil
	case models.ProposalTypeMilestone:
		return ScopeMilestone, nil
	default:
		return "", fmt.Errorf("unknown proposal type %d: %w", proposalType, ErrInvalidState)
	}
}

func (e *Engine) stakeMinimum(
	proposalType uint8,
	txn *database.Txn,
) (int64, error) {
	switch proposalType {
	case models.ProposalTypeReferendum:
		return e.SettingInt(SettingRefsNewPrice, txn)
	case models.ProposalTypeAlliance:
		return e.SettingInt(SettingPropAlMin, txn)
	default:
		return e.SettingInt(SettingPropCmpMin, txn)
	}
}

func validateSpec(spec ProposalSpec) error {
	if spec.Creator == "" {
		return fmt.Errorf("creator required: %w", ErrInvalidState)
	}
	switch spec.Type {
	case models.ProposalTypeReferendum:
		if spec.SettingName == "" {
			return fmt.Errorf("setting name required: %w", ErrInvalidState)
		}
	case models.ProposalTypeAlliance,
		models.ProposalTypeCampaign,
		models.ProposalTypeMilestone:
		if spec.Recipient == "" {
			return fmt.Errorf("recipient required: %w", ErrInvalidState)
		}
		if spec.Quantity <= 0 {
			return fmt.Errorf("quantity required: %w", ErrInvalidState)
		}
	case models.ProposalTypeInvite:
		if spec.RewardOwner == "" {
			return fmt.Errorf("reward owner required: %w", ErrInvalidState)
		}
		if spec.MaxAmountPerInvite <= 0 {
			return fmt.Errorf("max amount per invite required: %w", ErrInvalidState)
		}
	}
	return nil
}

// CreateProposal submits a new proposal in the staged stage. The anti-spam
// stake arrives separately through Stake; the proposal activates at the next
// on-period tick once the staked amount reaches the type's minimum.
func (e *Engine) CreateProposal(
	auth string,
	spec ProposalSpec,
) (uint, error) {
	if auth != spec.Creator {
		return 0, ErrUnauthorized
	}
	if err := validateSpec(spec); err != nil {
		return 0, err
	}
	scope, err := proposalScope(spec.Type)
	if err != nil {
		return 0, err
	}
	docHash, err := e.db.Blob().Put(&blob.ProposalDocument{
		Title:       spec.Title,
		Summary:     spec.Summary,
		Description: spec.Description,
		Image:       spec.Image,
		URL:         spec.URL,
	})
	if err != nil {
		return 0, fmt.Errorf("store proposal document: %w", err)
	}
	proposal := models.Proposal{
		Type:      spec.Type,
		Creator:   spec.Creator,
		Fund:      spec.Fund,
		Scope:     scope,
		Quantity:  spec.Quantity,
		Symbol:    TokenSymbol,
		Status:    models.ProposalStatusOpen,
		Stage:     models.ProposalStageStaged,
		DocHash:   docHash,
		CreatedAt: e.config.Clock.Now().Unix(),
	}
	txn := e.db.Transaction()
	err = txn.Do(func(txn *database.Txn) error {
		if err := e.db.CreateProposal(&proposal, txn); err != nil {
			return err
		}
		return e.createAux(&proposal, spec, txn)
	})
	if err != nil {
		return 0, err
	}
	return proposal.ID, nil
}

func (e *Engine) createAux(
	proposal *models.Proposal,
	spec ProposalSpec,
	txn *database.Txn,
) error {
	switch spec.Type {
	case models.ProposalTypeReferendum:
		return e.db.SetReferendumAux(&models.ReferendumAux{
			ProposalID:  proposal.ID,
			SettingName: spec.SettingName,
			NewValue:    spec.NewValue,
			TestCycles:  spec.TestCycles,
			EvalCycles:  spec.EvalCycles,
		}, txn)
	case models.ProposalTypeInvite:
		maxAge := spec.MaxAge
		if maxAge == 0 {
			maxAge = 1
		}
		return e.db.SetInviteAux(&models.InviteAux{
			ProposalID:         proposal.ID,
			MaxAmountPerInvite: spec.MaxAmountPerInvite,
			Planted:            spec.Planted,
			Reward:             spec.Reward,
			RewardOwner:        spec.RewardOwner,
			MaxAge:             maxAge,
		}, txn)
	default:
		payPercentages := spec.PayPercentages
		if proposal.Type == models.ProposalTypeCampaign && payPercentages == "" {
			payPercentages = DefaultPayPercentages
		}
		return e.db.SetGrantAux(&models.GrantAux{
			ProposalID:     proposal.ID,
			Recipient:      spec.Recipient,
			PayPercentages: payPercentages,
		}, txn)
	}
}

// UpdateProposal replaces a staged proposal's display metadata and request.
// Only the creator may update, only before activation, and the proposal type
// cannot change. The existing auxiliary row is rewritten in place so that
// repeated updates never accumulate duplicate rows.
func (e *Engine) UpdateProposal(
	auth string,
	proposalID uint,
	spec ProposalSpec,
) error {
	if err := validateSpec(spec); err != nil {
		return err
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
		if auth != proposal.Creator {
			return ErrUnauthorized
		}
		if proposal.Stage != models.ProposalStageStaged {
			return fmt.Errorf(
				"proposal %d is no longer staged: %w",
				proposalID,
				ErrInvalidState,
			)
		}
		if spec.Type != proposal.Type {
			return fmt.Errorf(
				"proposal %d type cannot change: %w",
				proposalID,
				ErrInvalidState,
			)
		}
		docHash, err := e.db.Blob().Put(&blob.ProposalDocument{
			Title:       spec.Title,
			Summary:     spec.Summary,
			Description: spec.Description,
			Image:       spec.Image,
			URL:         spec.URL,
		})
		if err != nil {
			return fmt.Errorf("store proposal document: %w", err)
		}
		proposal.DocHash = docHash
		if spec.Quantity > 0 {
			proposal.Quantity = spec.Quantity
		}
		if err := e.db.SetProposal(proposal, txn); err != nil {
			return err
		}
		return e.updateAux(proposal, spec, txn)
	})
}

// updateAux rewrites the type-specific attributes of a staged proposal onto
// its existing auxiliary row, preserving the row identity
func (e *Engine) updateAux(
	proposal *models.Proposal,
	spec ProposalSpec,
	txn *database.Txn,
) error {
	switch proposal.Type {
	case models.ProposalTypeReferendum:
		aux, err := e.db.GetReferendumAux(proposal.ID, txn)
		if err != nil {
			return err
		}
		aux.SettingName = spec.SettingName
		aux.NewValue = spec.NewValue
		aux.TestCycles = spec.TestCycles
		aux.EvalCycles = spec.EvalCycles
		return e.db.SetReferendumAux(aux, txn)
	case models.ProposalTypeInvite:
		aux, err := e.db.GetInviteAux(proposal.ID, txn)
		if err != nil {
			return err
		}
		maxAge := spec.MaxAge
		if maxAge == 0 {
			maxAge = 1
		}
		aux.MaxAmountPerInvite = spec.MaxAmountPerInvite
		aux.Planted = spec.Planted
		aux.Reward = spec.Reward
		aux.RewardOwner = spec.RewardOwner
		aux.MaxAge = maxAge
		return e.db.SetInviteAux(aux, txn)
	default:
		aux, err := e.db.GetGrantAux(proposal.ID, txn)
		if err != nil {
			return err
		}
		payPercentages := spec.PayPercentages
		if proposal.Type == models.ProposalTypeCampaign && payPercentages == "" {
			payPercentages = DefaultPayPercentages
		}
		aux.Recipient = spec.Recipient
		aux.PayPercentages = payPercentages
		return e.db.SetGrantAux(aux, txn)
	}
}

// Stake records an anti-spam stake deposit for a staged proposal. The funds
// move from the staker to the engine's holding account and are settled
// exactly once when the proposal reaches its terminal state.
func (e *Engine) Stake(
	from string,
	proposalID uint,
	amount int64,
) error {
	if amount <= 0 {
		return fmt.Errorf("invalid stake amount %d: %w", amount, ErrInvalidState)
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
		if proposal.Stage != models.ProposalStageStaged ||
			proposal.Status != models.ProposalStatusOpen {
			return fmt.Errorf(
				"proposal %d is not accepting stake: %w",
				proposalID,
				ErrInvalidState,
			)
		}
		err = e.config.Token.Transfer(
			from,
			e.config.SelfAccount,
			amount,
			proposal.Symbol,
			fmt.Sprintf("stake for proposal %d", proposalID),
		)
		if err != nil {
			if errors.Is(err, contracts.ErrInsufficientBalance) {
				return fmt.Errorf("stake %d: %w", amount, ErrInsufficientBalance)
			}
			return err
		}
		proposal.Staked += amount
		return e.db.SetProposal(proposal, txn)
	})
}

// GetProposal returns a proposal row
func (e *Engine) GetProposal(proposalID uint) (*models.Proposal, error) {
	proposal, err := e.db.GetProposal(proposalID, nil)
	if err != nil {
		if errors.Is(err, models.ErrProposalNotFound) {
			return nil, fmt.Errorf("proposal %d: %w", proposalID, ErrNotFound)
		}
		return nil, err
	}
	return proposal, nil
}

// GetProposalDocument returns a proposal's display metadata
func (e *Engine) GetProposalDocument(
	proposalID uint,
) (*blob.ProposalDocument, error) {
	proposal, err := e.GetProposal(proposalID)
	if err != nil {
		return nil, err
	}
	return e.db.Blob().Get(proposal.DocHash)
}
