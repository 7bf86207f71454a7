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

// GetBatchCursor returns the persisted resume point for a batch job, or zero
// when the job has never run
func (d *Database) GetBatchCursor(
	jobName string,
	txn *Txn,
) (uint64, error) {
	db := d.resolveDB(txn)
	var cursor models.BatchCursor
	result := db.Where("job_name = ?", jobName).First(&cursor)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return cursor.NextKey, nil
}

// GetBatchCursorName returns the persisted name-keyed resume point for a
// batch job, or empty when the job has never run
func (d *Database) GetBatchCursorName(
	jobName string,
	txn *Txn,
) (string, error) {
	db := d.resolveDB(txn)
	var cursor models.BatchCursor
	result := db.Where("job_name = ?", jobName).First(&cursor)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return cursor.NextName, nil
}

// SetBatchCursorName persists the name-keyed resume point for a batch job
func (d *Database) SetBatchCursorName(
	jobName string,
	nextName string,
	at int64,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "job_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"next_name",
			"updated_at",
		}),
	}
	cursor := models.BatchCursor{
		JobName:   jobName,
		NextName:  nextName,
		UpdatedAt: at,
	}
	if result := db.Clauses(onConflict).Create(&cursor); result.Error != nil {
		return result.Error
	}
	return nil
}

// SetBatchCursor persists the resume point for a batch job
func (d *Database) SetBatchCursor(
	jobName string,
	nextKey uint64,
	at int64,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "job_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"next_key",
			"updated_at",
		}),
	}
	cursor := models.BatchCursor{
		JobName:   jobName,
		NextKey:   nextKey,
		UpdatedAt: at,
	}
	if result := db.Clauses(onConflict).Create(&cursor); result.Error != nil {
		return result.Error
	}
	return nil
}
