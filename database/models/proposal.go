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

var ErrProposalNotFound = errors.New("proposal not found")

// ProposalType constants represent the kind of proposal and determine which
// auxiliary row accompanies the proposal and how payouts are applied.
const (
	ProposalTypeReferendum = 0 // settings referendum
	ProposalTypeAlliance   = 1 // alliance grant
	ProposalTypeCampaign   = 2 // campaign funding
	ProposalTypeInvite     = 3 // campaign invite
	ProposalTypeMilestone  = 4 // milestone grant
)

// Proposal status constants track the fine-grained outcome phase.
const (
	ProposalStatusOpen     = 0
	ProposalStatusTest     = 1
	ProposalStatusEvaluate = 2
	ProposalStatusVoting   = 3
	ProposalStatusPassed   = 4
	ProposalStatusRejected = 5
)

// Proposal stage constants track the coarse lifecycle phase.
const (
	ProposalStageStaged = 0
	ProposalStageActive = 1
	ProposalStageDone   = 2
)

// Proposal represents a governance proposal driven through its lifecycle by
// the cycle scheduler. Proposals have a staged -> active -> done lifecycle;
// the orthogonal status field tracks voting intent and outcome.
// Display metadata (title, summary, description, image, url) is stored in the
// blob document store keyed by DocHash.
type Proposal struct {
	ID           uint   `gorm:"primarykey"`
	Type         uint8  `gorm:"index;not null"`
	Creator      string `gorm:"index;size:64;not null"`
	Fund         string `gorm:"size:64;not null"` // source account for payouts
	Scope        string `gorm:"index;size:32;not null"`
	Quantity     int64  `gorm:"not null"` // requested amount in base units
	Symbol       string `gorm:"size:16;not null"`
	Status       uint8  `gorm:"index;not null"`
	Stage        uint8  `gorm:"index;not null"`
	Staked       int64  `gorm:"not null"`
	Favour       int64  `gorm:"not null"`
	Against      int64  `gorm:"not null"`
	LastRanCycle uint64 `gorm:"not null"`
	Age          uint64 `gorm:"not null"` // cycles spent active
	PassedCycle  uint64
	Executed     bool   `gorm:"not null"` // side effects applied at most once
	DocHash      []byte `gorm:"size:32"`
	CreatedAt    int64  `gorm:"not null"`
}

// TableName returns the table name
func (Proposal) TableName() string {
	return "proposal"
}
