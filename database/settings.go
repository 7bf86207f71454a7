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

// GetSetting returns a setting by name
func (d *Database) GetSetting(
	name string,
	txn *Txn,
) (*models.Setting, error) {
	db := d.resolveDB(txn)
	var setting models.Setting
	if result := db.Where(
		"name = ?",
		name,
	).First(&setting); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrSettingNotFound
		}
		return nil, result.Error
	}
	return &setting, nil
}

// SetSetting creates or updates a setting
func (d *Database) SetSetting(
	setting *models.Setting,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"int_value",
			"float_value",
			"is_float",
		}),
	}
	if result := db.Clauses(onConflict).Create(setting); result.Error != nil {
		return result.Error
	}
	return nil
}
