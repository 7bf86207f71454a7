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

// GetEscrowLock returns the mirror row for an escrow lock
func (d *Database) GetEscrowLock(
	lockID uint64,
	txn *Txn,
) (*models.EscrowLock, error) {
	db := d.resolveDB(txn)
	var lock models.EscrowLock
	if result := db.Where(
		"lock_id = ?",
		lockID,
	).First(&lock); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrEscrowLockNotFound
		}
		return nil, result.Error
	}
	return &lock, nil
}

// SetEscrowLock creates or updates an escrow lock mirror row
func (d *Database) SetEscrowLock(
	lock *models.EscrowLock,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(lock); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetEscrowLocksByProposal returns the lock mirror rows owned by a proposal
func (d *Database) GetEscrowLocksByProposal(
	proposalID uint,
	txn *Txn,
) ([]*models.EscrowLock, error) {
	db := d.resolveDB(txn)
	var locks []*models.EscrowLock
	if result := db.Where(
		"proposal_id = ?",
		proposalID,
	).Order("id").Find(&locks); result.Error != nil {
		return nil, result.Error
	}
	return locks, nil
}
