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

var ErrVoteNotFound = errors.New("vote not found")

// Vote kind constants represent the vote choice on a proposal.
const (
	VoteKindAgainst = 0
	VoteKindFavour  = 1
	VoteKindNeutral = 2
)

// Vote represents a single account's vote on a proposal. An account may hold
// at most one vote per proposal; reverting restores the committed voice and
// removes the row.
type Vote struct {
	ID         uint   `gorm:"primarykey"`
	ProposalID uint   `gorm:"index:idx_vote_proposal;uniqueIndex:idx_vote_unique,priority:1;not null"`
	Account    string `gorm:"uniqueIndex:idx_vote_unique,priority:2;size:64;not null"`
	Amount     int64  `gorm:"not null"` // voice weight committed
	Kind       uint8  `gorm:"not null"`
	Cycle      uint64 `gorm:"index;not null"` // cycle the vote was cast in
}

// TableName returns the table name
func (Vote) TableName() string {
	return "vote"
}

// VoteDebit records which voice balances were debited to fund a vote. A
// delegate's effective weight spans its own and its delegators' balances, so
// a single vote may debit several accounts; reverting replays these rows in
// reverse.
type VoteDebit struct {
	ID      uint   `gorm:"primarykey"`
	VoteID  uint   `gorm:"index;not null"`
	Account string `gorm:"size:64;not null"`
	Scope   string `gorm:"size:32;not null"`
	Amount  int64  `gorm:"not null"`
}

// TableName returns the table name
func (VoteDebit) TableName() string {
	return "vote_debit"
}
