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

var ErrEscrowLockNotFound = errors.New("escrow lock not found")

// EscrowLock state constants.
const (
	EscrowLockPending = 0 // created, waiting for trigger
	EscrowLockLive    = 1 // trigger fired, funds released
	EscrowLockVoided  = 2 // owning proposal failed; trigger becomes a no-op
)

// EscrowLock mirrors a lock held by the external escrow collaborator. The
// mirror row lets trigger events that arrive before or after the owning
// proposal settles be reconciled idempotently: a trigger for a voided lock
// is a no-op, and a repeated trigger for a live lock is ignored.
type EscrowLock struct {
	ID         uint   `gorm:"primarykey"`
	LockID     uint64 `gorm:"uniqueIndex;not null"`
	ProposalID uint   `gorm:"index;not null"`
	Recipient  string `gorm:"size:64;not null"`
	Quantity   int64  `gorm:"not null"`
	Symbol     string `gorm:"size:16;not null"`
	State      uint8  `gorm:"index;not null"`
	UpdatedAt  int64  `gorm:"not null"` // unix seconds
}

// TableName returns the table name
func (EscrowLock) TableName() string {
	return "escrow_lock"
}
