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
	ErrDhoNotFound     = errors.New("dho not found")
	ErrDhoVoteNotFound = errors.New("dho vote not found")
)

// Dho represents a distributed hub organization receiving point allocations
// through the DHO distribution engine. A removed DHO stays in the table with
// Eligible false until its votes expire, so that total percentages remain
// stable while distribution percentages exclude it immediately.
type Dho struct {
	ID       uint   `gorm:"primarykey"`
	OrgName  string `gorm:"uniqueIndex;size:64;not null"`
	Points   int64  `gorm:"not null"`
	Eligible bool   `gorm:"index;not null"`
}

// TableName returns the table name
func (Dho) TableName() string {
	return "dho"
}

// DhoVote represents one account's point allocation to one DHO. Re-voting
// replaces all of the account's prior allocations (recast); rows older than
// the recast window are expired by the vote cleaner.
type DhoVote struct {
	ID      uint   `gorm:"primarykey"`
	Account string `gorm:"index:idx_dho_vote_account;size:64;not null"`
	Dho     string `gorm:"index;size:64;not null"`
	Points  int64  `gorm:"not null"`
	CastAt  int64  `gorm:"index;not null"` // unix seconds
}

// TableName returns the table name
func (DhoVote) TableName() string {
	return "dho_vote"
}

// DhoShare is the computed distribution snapshot for one DHO. The rows are
// replaced wholesale on each distribution calculation. TotalPercentage is the
// share of all DHO points; DistPercentage is the renormalized share among
// eligible DHOs only.
type DhoShare struct {
	ID              uint    `gorm:"primarykey"`
	Dho             string  `gorm:"uniqueIndex;size:64;not null"`
	TotalPercentage float64 `gorm:"not null"`
	DistPercentage  float64 `gorm:"not null"`
}

// TableName returns the table name
func (DhoShare) TableName() string {
	return "dho_share"
}
