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

package database

import (
	"errors"

	"github.com/seedsdao/gardend/database/models"
	"gorm.io/gorm"
)

// GetProposal returns a proposal by ID
func (d *Database) GetProposal(
	id uint,
	txn *Txn,
) (*models.Proposal, error) {
	db := d.resolveDB(txn)
	var proposal models.Proposal
	if result := db.First(&proposal, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProposalNotFound
		}
		return nil, result.Error
	}
	return &proposal, nil
}

// CreateProposal inserts a new proposal row and returns the assigned ID
func (d *Database) CreateProposal(
	proposal *models.Proposal,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(proposal); result.Error != nil {
		return result.Error
	}
	return nil
}

// SetProposal updates an existing proposal row
func (d *Database) SetProposal(
	proposal *models.Proposal,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(proposal); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetProposalsAfter returns up to limit proposals that are not yet done,
// ordered by ID, starting after the given ID. This is the scan used by the
// scheduler's resumable batch cursor.
func (d *Database) GetProposalsAfter(
	afterID uint,
	limit int,
	txn *Txn,
) ([]*models.Proposal, error) {
	db := d.resolveDB(txn)
	var proposals []*models.Proposal
	if result := db.Where(
		"id > ? AND stage <> ?",
		afterID,
		models.ProposalStageDone,
	).Order("id").Limit(limit).Find(&proposals); result.Error != nil {
		return nil, result.Error
	}
	return proposals, nil
}

// CountOpenProposals returns the number of proposals not yet done
func (d *Database) CountOpenProposals(txn *Txn) (int64, error) {
	db := d.resolveDB(txn)
	var count int64
	if result := db.Model(&models.Proposal{}).Where(
		"stage <> ?",
		models.ProposalStageDone,
	).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetReferendumAux returns the referendum auxiliary row for a proposal
func (d *Database) GetReferendumAux(
	proposalID uint,
	txn *Txn,
) (*models.ReferendumAux, error) {
	db := d.resolveDB(txn)
	var aux models.ReferendumAux
	if result := db.Where(
		"proposal_id = ?",
		proposalID,
	).First(&aux); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProposalAuxNotFound
		}
		return nil, result.Error
	}
	return &aux, nil
}

// SetReferendumAux creates or updates a referendum auxiliary row
func (d *Database) SetReferendumAux(
	aux *models.ReferendumAux,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(aux); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetGrantAux returns the grant auxiliary row for a proposal
func (d *Database) GetGrantAux(
	proposalID uint,
	txn *Txn,
) (*models.GrantAux, error) {
	db := d.resolveDB(txn)
	var aux models.GrantAux
	if result := db.Where(
		"proposal_id = ?",
		proposalID,
	).First(&aux); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProposalAuxNotFound
		}
		return nil, result.Error
	}
	return &aux, nil
}

// SetGrantAux creates or updates a grant auxiliary row
func (d *Database) SetGrantAux(
	aux *models.GrantAux,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(aux); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetInviteAux returns the invite auxiliary row for a proposal
func (d *Database) GetInviteAux(
	proposalID uint,
	txn *Txn,
) (*models.InviteAux, error) {
	db := d.resolveDB(txn)
	var aux models.InviteAux
	if result := db.Where(
		"proposal_id = ?",
		proposalID,
	).First(&aux); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProposalAuxNotFound
		}
		return nil, result.Error
	}
	return &aux, nil
}

// SetInviteAux creates or updates an invite auxiliary row
func (d *Database) SetInviteAux(
	aux *models.InviteAux,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(aux); result.Error != nil {
		return result.Error
	}
	return nil
}
