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

// GetDho returns a DHO by organization name
func (d *Database) GetDho(
	orgName string,
	txn *Txn,
) (*models.Dho, error) {
	db := d.resolveDB(txn)
	var dho models.Dho
	if result := db.Where(
		"org_name = ?",
		orgName,
	).First(&dho); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrDhoNotFound
		}
		return nil, result.Error
	}
	return &dho, nil
}

// SetDho creates or updates a DHO row
func (d *Database) SetDho(
	dho *models.Dho,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(dho); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetDhos returns all DHO rows ordered by organization name
func (d *Database) GetDhos(txn *Txn) ([]*models.Dho, error) {
	db := d.resolveDB(txn)
	var dhos []*models.Dho
	if result := db.Order("org_name").Find(&dhos); result.Error != nil {
		return nil, result.Error
	}
	return dhos, nil
}

// GetDhoVotesByAccount returns an account's DHO votes
func (d *Database) GetDhoVotesByAccount(
	account string,
	txn *Txn,
) ([]*models.DhoVote, error) {
	db := d.resolveDB(txn)
	var votes []*models.DhoVote
	if result := db.Where(
		"account = ?",
		account,
	).Order("id").Find(&votes); result.Error != nil {
		return nil, result.Error
	}
	return votes, nil
}

// GetDhoVotesByDho returns the votes allocated to a DHO
func (d *Database) GetDhoVotesByDho(
	dho string,
	txn *Txn,
) ([]*models.DhoVote, error) {
	db := d.resolveDB(txn)
	var votes []*models.DhoVote
	if result := db.Where(
		"dho = ?",
		dho,
	).Order("id").Find(&votes); result.Error != nil {
		return nil, result.Error
	}
	return votes, nil
}

// GetDhoVotesBefore returns DHO votes cast before the given unix timestamp
func (d *Database) GetDhoVotesBefore(
	castBefore int64,
	txn *Txn,
) ([]*models.DhoVote, error) {
	db := d.resolveDB(txn)
	var votes []*models.DhoVote
	if result := db.Where(
		"cast_at < ?",
		castBefore,
	).Order("id").Find(&votes); result.Error != nil {
		return nil, result.Error
	}
	return votes, nil
}

// CreateDhoVote inserts a new DHO vote row
func (d *Database) CreateDhoVote(
	vote *models.DhoVote,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(vote); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteDhoVote removes a DHO vote row
func (d *Database) DeleteDhoVote(
	vote *models.DhoVote,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Delete(vote); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteDhoVotesByDho removes all votes allocated to a DHO
func (d *Database) DeleteDhoVotesByDho(
	dho string,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Where(
		"dho = ?",
		dho,
	).Delete(&models.DhoVote{}); result.Error != nil {
		return result.Error
	}
	return nil
}

// ReplaceDhoShares replaces the distribution snapshot wholesale
func (d *Database) ReplaceDhoShares(
	shares []*models.DhoShare,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Where("1 = 1").Delete(&models.DhoShare{}); result.Error != nil {
		return result.Error
	}
	for _, share := range shares {
		if result := db.Create(share); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// GetDhoShares returns the current distribution snapshot ordered by DHO name
func (d *Database) GetDhoShares(txn *Txn) ([]*models.DhoShare, error) {
	db := d.resolveDB(txn)
	var shares []*models.DhoShare
	if result := db.Order("dho").Find(&shares); result.Error != nil {
		return nil, result.Error
	}
	return shares, nil
}
