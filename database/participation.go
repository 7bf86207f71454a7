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

// RecordParticipation bumps the participation counters for an account in the
// current cycle, creating the row on first interaction
func (d *Database) RecordParticipation(
	account string,
	cycle uint64,
	nonNeutral bool,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	var participant models.Participant
	result := db.Where("account = ?", account).First(&participant)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		participant = models.Participant{
			Account: account,
			Cycle:   cycle,
		}
	}
	participant.Count++
	if nonNeutral {
		participant.NonNeutral++
	}
	if saveResult := db.Save(&participant); saveResult.Error != nil {
		return saveResult.Error
	}
	return nil
}

// GetParticipants returns all participation rows for the current cycle
func (d *Database) GetParticipants(txn *Txn) ([]*models.Participant, error) {
	db := d.resolveDB(txn)
	var participants []*models.Participant
	if result := db.Order("account").Find(&participants); result.Error != nil {
		return nil, result.Error
	}
	return participants, nil
}

// ClearParticipants removes all participation rows at the cycle boundary
func (d *Database) ClearParticipants(txn *Txn) error {
	db := d.resolveDB(txn)
	if result := db.Where("1 = 1").Delete(&models.Participant{}); result.Error != nil {
		return result.Error
	}
	return nil
}

// TouchActive records account activity for the current cycle
func (d *Database) TouchActive(
	account string,
	cycle uint64,
	at int64,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	var active models.Active
	result := db.Where("account = ?", account).First(&active)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		active = models.Active{Account: account}
	}
	active.Cycle = cycle
	active.LastActivity = at
	if saveResult := db.Save(&active); saveResult.Error != nil {
		return saveResult.Error
	}
	return nil
}

// GetActives returns all activity rows for the current cycle
func (d *Database) GetActives(txn *Txn) ([]*models.Active, error) {
	db := d.resolveDB(txn)
	var actives []*models.Active
	if result := db.Order("account").Find(&actives); result.Error != nil {
		return nil, result.Error
	}
	return actives, nil
}

// ClearActives removes all activity rows at the cycle boundary
func (d *Database) ClearActives(txn *Txn) error {
	db := d.resolveDB(txn)
	if result := db.Where("1 = 1").Delete(&models.Active{}); result.Error != nil {
		return result.Error
	}
	return nil
}
