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

var ErrProposalAuxNotFound = errors.New("proposal auxiliary data not found")

// ReferendumAux holds the type-specific attributes of a settings referendum.
// The previous value is captured when the new value is tentatively applied at
// the evaluate transition so that a later rejection can restore it.
type ReferendumAux struct {
	ID            uint   `gorm:"primarykey"`
	ProposalID    uint   `gorm:"uniqueIndex;not null"`
	SettingName   string `gorm:"size:32;not null"`
	NewValue      int64  `gorm:"not null"`
	PreviousValue int64
	Applied       bool   `gorm:"not null"` // new value tentatively in effect
	TestCycles    uint64 `gorm:"not null"`
	EvalCycles    uint64 `gorm:"not null"`
}

// TableName returns the table name
func (ReferendumAux) TableName() string {
	return "referendum_aux"
}

// GrantAux holds the type-specific attributes of alliance, campaign and
// milestone grant proposals. PayPercentages is the comma-separated payout
// schedule for campaign funding (default "25,25,25,25"); alliance and
// milestone grants pay through a single escrow lock recorded in LockID.
type GrantAux struct {
	ID             uint   `gorm:"primarykey"`
	ProposalID     uint   `gorm:"uniqueIndex;not null"`
	Recipient      string `gorm:"size:64;not null"`
	PayPercentages string `gorm:"size:64"`
	CurrentPayout  int64  `gorm:"not null"`
	PaidCycles     uint64 `gorm:"not null"`
	LockID         *uint64
}

// TableName returns the table name
func (GrantAux) TableName() string {
	return "grant_aux"
}

// InviteAux holds the type-specific attributes of campaign invite proposals.
type InviteAux struct {
	ID                 uint   `gorm:"primarykey"`
	ProposalID         uint   `gorm:"uniqueIndex;not null"`
	MaxAmountPerInvite int64  `gorm:"not null"`
	Planted            int64  `gorm:"not null"`
	Reward             int64  `gorm:"not null"`
	RewardOwner        string `gorm:"size:64;not null"`
	CampaignID         *uint64
	MaxAge             uint64 `gorm:"not null"`
}

// TableName returns the table name
func (InviteAux) TableName() string {
	return "invite_aux"
}
