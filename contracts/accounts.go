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
	"sort"
	"sync"
)

var ErrAccountNotFound = errors.New("account not found")

// Accounts is the accounts contract collaborator. It provides the community
// contribution score that drives voice balances and receives reputation
// awards at cycle boundaries.
type Accounts interface {
	// CommunityScore returns the account's current contribution score
	CommunityScore(account string) (int64, error)
	// Accounts returns all known account names in ascending order
	Accounts() []string
	// AddReputation credits reputation to an account
	AddReputation(account string, amount uint64) error
}

// MemoryAccounts is an in-memory Accounts implementation
type MemoryAccounts struct {
	mu         sync.Mutex
	scores     map[string]int64
	reputation map[string]uint64
}

// NewMemoryAccounts creates an empty in-memory accounts registry
func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{
		scores:     make(map[string]int64),
		reputation: make(map[string]uint64),
	}
}

// SetScore registers an account with a community score
func (a *MemoryAccounts) SetScore(account string, score int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scores[account] = score
}

// RemoveAccount deletes an account from the registry
func (a *MemoryAccounts) RemoveAccount(account string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.scores, account)
	delete(a.reputation, account)
}

// CommunityScore returns an account's community score
func (a *MemoryAccounts) CommunityScore(account string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	score, ok := a.scores[account]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return score, nil
}

// Accounts returns all registered account names in ascending order
func (a *MemoryAccounts) Accounts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.scores))
	for name := range a.scores {
		names = append(names, name)
	}
	// Deterministic ordering for batch scans
	sort.Strings(names)
	return names
}

// AddReputation credits reputation to an account
func (a *MemoryAccounts) AddReputation(account string, amount uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.scores[account]; !ok {
		return ErrAccountNotFound
	}
	a.reputation[account] += amount
	return nil
}

// Reputation returns an account's accumulated reputation
func (a *MemoryAccounts) Reputation(account string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reputation[account]
}
