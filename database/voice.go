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
	"gorm.io/gorm/clause"
)

// GetVoice returns an account's voice balance in a scope
func (d *Database) GetVoice(
	account string,
	scope string,
	txn *Txn,
) (*models.Voice, error) {
	db := d.resolveDB(txn)
	var voice models.Voice
	if result := db.Where(
		"account = ? AND scope = ?",
		account,
		scope,
	).First(&voice); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrVoiceNotFound
		}
		return nil, result.Error
	}
	return &voice, nil
}

// SetVoice creates or updates a voice row
func (d *Database) SetVoice(
	voice *models.Voice,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "account"},
			{Name: "scope"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"balance",
			"last_update",
			"last_decay",
		}),
	}
	if result := db.Clauses(onConflict).Create(voice); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetVoicesAfter returns up to limit voice rows ordered by ID, starting after
// the given ID. This is the scan used by the voice update and decay batch
// cursors.
func (d *Database) GetVoicesAfter(
	afterID uint,
	limit int,
	txn *Txn,
) ([]*models.Voice, error) {
	db := d.resolveDB(txn)
	var voices []*models.Voice
	if result := db.Where(
		"id > ?",
		afterID,
	).Order("id").Limit(limit).Find(&voices); result.Error != nil {
		return nil, result.Error
	}
	return voices, nil
}

// GetVoicesByScope returns all voice rows in a scope
func (d *Database) GetVoicesByScope(
	scope string,
	txn *Txn,
) ([]*models.Voice, error) {
	db := d.resolveDB(txn)
	var voices []*models.Voice
	if result := db.Where(
		"scope = ?",
		scope,
	).Order("account").Find(&voices); result.Error != nil {
		return nil, result.Error
	}
	return voices, nil
}

// DeleteVoicesByScope removes every voice row in a scope
func (d *Database) DeleteVoicesByScope(
	scope string,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Where(
		"scope = ?",
		scope,
	).Delete(&models.Voice{}); result.Error != nil {
		return result.Error
	}
	return nil
}

// FreeVoice returns the sum of uncommitted voice balances in a scope
func (d *Database) FreeVoice(
	scope string,
	txn *Txn,
) (int64, error) {
	db := d.resolveDB(txn)
	var total int64
	if result := db.Model(&models.Voice{}).Where(
		"scope = ?",
		scope,
	).Select("COALESCE(SUM(balance), 0)").Scan(&total); result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

// GetDelegation returns the delegation edge for a delegator in a scope
func (d *Database) GetDelegation(
	delegator string,
	scope string,
	txn *Txn,
) (*models.Delegation, error) {
	db := d.resolveDB(txn)
	var delegation models.Delegation
	if result := db.Where(
		"delegator = ? AND scope = ?",
		delegator,
		scope,
	).First(&delegation); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrDelegationNotFound
		}
		return nil, result.Error
	}
	return &delegation, nil
}

// SetDelegation creates or replaces the delegation edge for a delegator in a
// scope
func (d *Database) SetDelegation(
	delegation *models.Delegation,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "delegator"},
			{Name: "scope"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"delegate"}),
	}
	if result := db.Clauses(onConflict).Create(delegation); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteDelegation removes the delegation edge for a delegator in a scope
func (d *Database) DeleteDelegation(
	delegator string,
	scope string,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	result := db.Where(
		"delegator = ? AND scope = ?",
		delegator,
		scope,
	).Delete(&models.Delegation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrDelegationNotFound
	}
	return nil
}

// GetDelegators returns the delegation edges pointing at a delegate in a
// scope, ordered by delegator account
func (d *Database) GetDelegators(
	delegate string,
	scope string,
	txn *Txn,
) ([]*models.Delegation, error) {
	db := d.resolveDB(txn)
	var delegations []*models.Delegation
	if result := db.Where(
		"delegate = ? AND scope = ?",
		delegate,
		scope,
	).Order("delegator").Find(&delegations); result.Error != nil {
		return nil, result.Error
	}
	return delegations, nil
}
