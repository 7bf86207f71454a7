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

package contracts

import (
	"errors"
	"fmt"
	"sync"
)

var ErrLockNotFound = errors.New("escrow lock not found")

// Escrow is the escrow contract collaborator. Locks are funded at creation
// by a transfer from the source account into the escrow account and released
// to the recipient when the gating condition fires.
type Escrow interface {
	// CreateLock funds a new lock and returns its ID
	CreateLock(from, recipient string, amount int64, symbol, note string) (uint64, error)
	// ReleaseLock pays a lock out to its recipient
	ReleaseLock(lockID uint64) error
	// CancelLock refunds a lock to the given account
	CancelLock(lockID uint64, refundTo string) error
}

type memoryLock struct {
	recipient string
	amount    int64
	symbol    string
	settled   bool
}

// MemoryEscrow is an in-memory Escrow implementation backed by a Token
// ledger. Funds move through the configured escrow holding account.
type MemoryEscrow struct {
	mu      sync.Mutex
	token   Token
	account string
	nextID  uint64
	locks   map[uint64]*memoryLock
}

// NewMemoryEscrow creates an in-memory escrow over the given token ledger
func NewMemoryEscrow(token Token, account string) *MemoryEscrow {
	return &MemoryEscrow{
		token:   token,
		account: account,
		locks:   make(map[uint64]*memoryLock),
	}
}

// CreateLock funds a new lock from the given account
func (e *MemoryEscrow) CreateLock(
	from, recipient string,
	amount int64,
	symbol, note string,
) (uint64, error) {
	if err := e.token.Transfer(from, e.account, amount, symbol, note); err != nil {
		return 0, fmt.Errorf("fund lock: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.locks[e.nextID] = &memoryLock{
		recipient: recipient,
		amount:    amount,
		symbol:    symbol,
	}
	return e.nextID, nil
}

// ReleaseLock pays a lock out to its recipient
func (e *MemoryEscrow) ReleaseLock(lockID uint64) error {
	e.mu.Lock()
	lock, ok := e.locks[lockID]
	if !ok || lock.settled {
		e.mu.Unlock()
		return ErrLockNotFound
	}
	lock.settled = true
	e.mu.Unlock()
	return e.token.Transfer(
		e.account,
		lock.recipient,
		lock.amount,
		lock.symbol,
		"escrow release",
	)
}

// CancelLock refunds a lock to the given account
func (e *MemoryEscrow) CancelLock(lockID uint64, refundTo string) error {
	e.mu.Lock()
	lock, ok := e.locks[lockID]
	if !ok || lock.settled {
		e.mu.Unlock()
		return ErrLockNotFound
	}
	lock.settled = true
	e.mu.Unlock()
	return e.token.Transfer(
		e.account,
		refundTo,
		lock.amount,
		lock.symbol,
		"escrow cancel",
	)
}
