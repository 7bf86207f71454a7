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

// Package contracts defines the external collaborators the proposal engine
// interacts with: the token contract moving stakes and payouts, the accounts
// contract providing community scores and receiving reputation, and the
// escrow contract holding gated grants. In-memory implementations are
// provided for tests and dev mode.
package contracts

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// Token is the token contract collaborator. Amounts are in base units
// (4 decimal places for SEEDS).
type Token interface {
	Transfer(from, to string, amount int64, symbol, memo string) error
	Burn(from string, amount int64, symbol, memo string) error
	Balance(account, symbol string) int64
}

// MemoryToken is an in-memory Token implementation
type MemoryToken struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewMemoryToken creates an empty in-memory token ledger
func NewMemoryToken() *MemoryToken {
	return &MemoryToken{
		balances: make(map[string]int64),
	}
}

func balanceKey(account, symbol string) string {
	return account + "/" + symbol
}

// Issue credits new tokens to an account
func (t *MemoryToken) Issue(to string, amount int64, symbol string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[balanceKey(to, symbol)] += amount
}

// Transfer moves tokens between accounts
func (t *MemoryToken) Transfer(
	from, to string,
	amount int64,
	symbol, memo string,
) error {
	if amount <= 0 {
		return fmt.Errorf("invalid transfer amount %d", amount)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fromKey := balanceKey(from, symbol)
	if t.balances[fromKey] < amount {
		return fmt.Errorf(
			"transfer %d %s from %s: %w",
			amount,
			symbol,
			from,
			ErrInsufficientBalance,
		)
	}
	t.balances[fromKey] -= amount
	t.balances[balanceKey(to, symbol)] += amount
	return nil
}

// Burn destroys tokens held by an account
func (t *MemoryToken) Burn(
	from string,
	amount int64,
	symbol, memo string,
) error {
	if amount <= 0 {
		return fmt.Errorf("invalid burn amount %d", amount)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fromKey := balanceKey(from, symbol)
	if t.balances[fromKey] < amount {
		return fmt.Errorf(
			"burn %d %s from %s: %w",
			amount,
			symbol,
			from,
			ErrInsufficientBalance,
		)
	}
	t.balances[fromKey] -= amount
	return nil
}

// Balance returns the current balance of an account
func (t *MemoryToken) Balance(account, symbol string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[balanceKey(account, symbol)]
}
