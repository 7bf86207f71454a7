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

// GetVote returns the vote cast by an account on a proposal
func (d *Database) GetVote(
	proposalID uint,
	account string,
	txn *Txn,
) (*models.Vote, error) {
	db := d.resolveDB(txn)
	var vote models.Vote
	if result := db.Where(
		"proposal_id = ? AND account = ?",
		proposalID,
		account,
	).First(&vote); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrVoteNotFound
		}
		return nil, result.Error
	}
	return &vote, nil
}

// CreateVote inserts a new vote row
func (d *Database) CreateVote(
	vote *models.Vote,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(vote); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteVote removes a vote row and its debit records
func (d *Database) DeleteVote(
	vote *models.Vote,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Where(
		"vote_id = ?",
		vote.ID,
	).Delete(&models.VoteDebit{}); result.Error != nil {
		return result.Error
	}
	if result := db.Delete(vote); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetVotesByProposal returns all votes cast on a proposal
func (d *Database) GetVotesByProposal(
	proposalID uint,
	txn *Txn,
) ([]*models.Vote, error) {
	db := d.resolveDB(txn)
	var votes []*models.Vote
	if result := db.Where(
		"proposal_id = ?",
		proposalID,
	).Order("id").Find(&votes); result.Error != nil {
		return nil, result.Error
	}
	return votes, nil
}

// CreateVoteDebit inserts a new vote debit row
func (d *Database) CreateVoteDebit(
	debit *models.VoteDebit,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(debit); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetVoteDebits returns the debit rows funding a vote
func (d *Database) GetVoteDebits(
	voteID uint,
	txn *Txn,
) ([]*models.VoteDebit, error) {
	db := d.resolveDB(txn)
	var debits []*models.VoteDebit
	if result := db.Where(
		"vote_id = ?",
		voteID,
	).Order("id").Find(&debits); result.Error != nil {
		return nil, result.Error
	}
	return debits, nil
}

// CommittedVoice returns the total voice currently committed to votes in the
// given scope. This is added back to free balances when computing the total
// eligible voice for quorum checks.
func (d *Database) CommittedVoice(
	scope string,
	txn *Txn,
) (int64, error) {
	db := d.resolveDB(txn)
	var total int64
	if result := db.Model(&models.VoteDebit{}).Where(
		"scope = ?",
		scope,
	).Select("COALESCE(SUM(amount), 0)").Scan(&total); result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}
