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

// GetCycleStats returns the stats row for a cycle
func (d *Database) GetCycleStats(
	cycleNumber uint64,
	txn *Txn,
) (*models.CycleStats, error) {
	db := d.resolveDB(txn)
	var stats models.CycleStats
	if result := db.First(&stats, cycleNumber); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrCycleNotFound
		}
		return nil, result.Error
	}
	return &stats, nil
}

// SetCycleStats creates or updates a cycle stats row
func (d *Database) SetCycleStats(
	stats *models.CycleStats,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(stats); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetLatestCycle returns the highest recorded cycle number, or zero when no
// cycle has run yet
func (d *Database) GetLatestCycle(txn *Txn) (uint64, error) {
	db := d.resolveDB(txn)
	var stats models.CycleStats
	result := db.Order("cycle_number DESC").First(&stats)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return stats.CycleNumber, nil
}
