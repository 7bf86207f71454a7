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

import "errors"

var (
	ErrVoiceNotFound      = errors.New("voice not found")
	ErrDelegationNotFound = errors.New("delegation not found")
)

// Voice represents an account's voting-power balance in a single voting
// scope. Balances are recomputed from community scores, reduced by active
// votes and decayed multiplicatively on a configurable schedule.
type Voice struct {
	ID         uint   `gorm:"primarykey"`
	Account    string `gorm:"uniqueIndex:idx_voice_unique,priority:1;size:64;not null"`
	Scope      string `gorm:"uniqueIndex:idx_voice_unique,priority:2;index;size:32;not null"`
	Balance    int64  `gorm:"not null"`
	LastUpdate int64  `gorm:"not null"` // unix seconds of last score-driven update
	LastDecay  int64  `gorm:"not null"` // unix seconds of last applied decay
}

// TableName returns the table name
func (Voice) TableName() string {
	return "voice"
}

// Delegation represents a single directed delegation edge for one scope.
// While the edge exists the delegator cannot vote directly in that scope.
type Delegation struct {
	ID        uint   `gorm:"primarykey"`
	Delegator string `gorm:"uniqueIndex:idx_delegation_unique,priority:1;size:64;not null"`
	Scope     string `gorm:"uniqueIndex:idx_delegation_unique,priority:2;size:32;not null"`
	Delegate  string `gorm:"index;size:64;not null"`
}

// TableName returns the table name
func (Delegation) TableName() string {
	return "delegation"
}
