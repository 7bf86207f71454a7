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

package models

// Participant tracks per-cycle voting activity for one account. NonNeutral
// counts distinct proposals voted favour or against; Count counts all vote
// interactions including neutral. Rows are cleared at the start of each new
// cycle after reputation settlement.
type Participant struct {
	ID         uint   `gorm:"primarykey"`
	Account    string `gorm:"uniqueIndex;size:64;not null"`
	Cycle      uint64 `gorm:"index;not null"`
	Count      uint64 `gorm:"not null"`
	NonNeutral uint64 `gorm:"not null"`
}

// TableName returns the table name
func (Participant) TableName() string {
	return "participant"
}

// Active tracks the most recent activity timestamp for each account seen
// during the current cycle.
type Active struct {
	ID           uint   `gorm:"primarykey"`
	Account      string `gorm:"uniqueIndex;size:64;not null"`
	Cycle        uint64 `gorm:"index;not null"`
	LastActivity int64  `gorm:"not null"` // unix seconds
}

// TableName returns the table name
func (Active) TableName() string {
	return "active"
}
