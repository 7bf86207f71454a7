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

package dao

import (
	"errors"
	"fmt"
	"slices"

	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/database/models"
)

// Batch job names for persisted resume cursors
const (
	jobVoiceUpdate = "voice.update"
	jobVoiceDecay  = "voice.decay"
)

func validScope(scope string) bool {
	return slices.Contains(VotingScopes, scope)
}

// UpdateVoices recomputes voice balances from the accounts contract's
// community score, processing at most batchsize accounts per call. The
// persisted cursor holds the last processed account name, so accounts added
// or removed mid-pass never shift the resume point; the return value reports
// whether the full pass completed. Re-running with unchanged scores is a
// no-op apart from the last-update timestamps.
func (e *Engine) UpdateVoices() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	accounts := e.config.Accounts.Accounts()
	now := e.config.Clock.Now().Unix()
	var done bool
	txn := e.db.Transaction()
	err := txn.Do(func(txn *database.Txn) error {
		batchSize, err := e.SettingInt(SettingBatchSize, txn)
		if err != nil {
			return err
		}
		cursor, err := e.db.GetBatchCursorName(jobVoiceUpdate, txn)
		if err != nil {
			return err
		}
		// Resume strictly after the cursor name; accounts sort ascending
		start := 0
		if cursor != "" {
			idx, found := slices.BinarySearch(accounts, cursor)
			start = idx
			if found {
				start++
			}
		}
		end := min(start+int(batchSize), len(accounts))
		for _, account := range accounts[start:end] {
			score, err := e.config.Accounts.CommunityScore(account)
			if err != nil {
				// Account disappeared between listing and scoring
				e.config.Logger.Warn(
					"skipping voice update",
					"component", "dao",
					"account", account,
					"error", err,
				)
				continue
			}
			for _, scope := range VotingScopes {
				voice, err := e.db.GetVoice(account, scope, txn)
				if err != nil {
					if !errors.Is(err, models.ErrVoiceNotFound) {
						return err
					}
					voice = &models.Voice{
						Account: account,
						Scope:   scope,
					}
				}
				voice.Balance = score
				voice.LastUpdate = now
				if err := e.db.SetVoice(voice, txn); err != nil {
					return err
				}
			}
		}
		next := ""
		if end >= len(accounts) {
			done = true
		} else if end > 0 {
			next = accounts[end-1]
		}
		return e.db.SetBatchCursorName(jobVoiceUpdate, next, now, txn)
	})
	if err != nil {
		return false, err
	}
	return done, nil
}

// DecayVoices applies one round of geometric decay to voice balances that are
// due, processing at most batchsize rows per call. A balance is due when its
// last score update is older than decaytime and its last decay older than
// propdecaysec; re-invoking inside either window is a no-op for that row.
func (e *Engine) DecayVoices() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.config.Clock.Now().Unix()
	var done bool
	txn := e.db.Transaction()
	err := txn.Do(func(txn *database.Txn) error {
		batchSize, err := e.SettingInt(SettingBatchSize, txn)
		if err != nil {
			return err
		}
		decayTime, err := e.SettingInt(SettingDecayTime, txn)
		if err != nil {
			return err
		}
		decayInterval, err := e.SettingInt(SettingPropDecaySec, txn)
		if err != nil {
			return err
		}
		decayPct, err := e.SettingInt(SettingVoiceDecayPct, txn)
		if err != nil {
			return err
		}
		cursor, err := e.db.GetBatchCursor(jobVoiceDecay, txn)
		if err != nil {
			return err
		}
		voices, err := e.db.GetVoicesAfter(uint(cursor), int(batchSize), txn)
		if err != nil {
			return err
		}
		next := cursor
		for _, voice := range voices {
			next = uint64(voice.ID)
			if now-voice.LastUpdate < decayTime {
				continue
			}
			if now-voice.LastDecay < decayInterval {
				continue
			}
			voice.Balance = voice.Balance * (100 - decayPct) / 100
			voice.LastDecay = now
			if err := e.db.SetVoice(voice, txn); err != nil {
				return err
			}
		}
		if len(voices) < int(batchSize) {
			next = 0
			done = true
		}
		return e.db.SetBatchCursor(jobVoiceDecay, next, now, txn)
	})
	if err != nil {
		return false, err
	}
	e.metrics.decayRunsTotal.Inc()
	return done, nil
}

// Delegate points an account's voice in a scope at a delegate. While the
// edge exists the delegator cannot vote directly in the scope and the
// delegate's effective weight includes the delegator's balance, resolved at
// vote time. Re-delegating replaces the existing edge.
func (e *Engine) Delegate(delegator, delegate, scope string) error {
	if !validScope(scope) {
		return fmt.Errorf("unknown scope %q: %w", scope, ErrNotFound)
	}
	if delegator == delegate {
		return fmt.Errorf("cannot delegate to self: %w", ErrInvalidState)
	}
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		// Delegation does not chain
		if _, err := e.db.GetDelegation(delegate, scope, txn); err == nil {
			return fmt.Errorf(
				"delegate %s has itself delegated scope %s: %w",
				delegate,
				scope,
				ErrInvalidState,
			)
		} else if !errors.Is(err, models.ErrDelegationNotFound) {
			return err
		}
		if delegators, err := e.db.GetDelegators(delegator, scope, txn); err != nil {
			return err
		} else if len(delegators) > 0 {
			return fmt.Errorf(
				"account %s holds delegated voice in scope %s: %w",
				delegator,
				scope,
				ErrInvalidState,
			)
		}
		return e.db.SetDelegation(&models.Delegation{
			Delegator: delegator,
			Delegate:  delegate,
			Scope:     scope,
		}, txn)
	})
}

// Undelegate removes the delegation edge for a scope, restoring the
// account's ability to vote directly
func (e *Engine) Undelegate(delegator, scope string) error {
	err := e.db.DeleteDelegation(delegator, scope, nil)
	if errors.Is(err, models.ErrDelegationNotFound) {
		return fmt.Errorf(
			"no delegation by %s in scope %s: %w",
			delegator,
			scope,
			ErrNotFound,
		)
	}
	return err
}

// AddVoice rebuilds a scope's voice balances from current community scores.
// Requires admin authorization. Used to restore a scope previously removed
// with DeleteScope.
func (e *Engine) AddVoice(auth, scope string) error {
	if err := e.requireAdmin(auth); err != nil {
		return err
	}
	if !validScope(scope) {
		return fmt.Errorf("unknown scope %q: %w", scope, ErrNotFound)
	}
	now := e.config.Clock.Now().Unix()
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		for _, account := range e.config.Accounts.Accounts() {
			score, err := e.config.Accounts.CommunityScore(account)
			if err != nil {
				continue
			}
			voice, err := e.db.GetVoice(account, scope, txn)
			if err != nil {
				if !errors.Is(err, models.ErrVoiceNotFound) {
					return err
				}
				voice = &models.Voice{
					Account: account,
					Scope:   scope,
				}
			}
			voice.Balance = score
			voice.LastUpdate = now
			if err := e.db.SetVoice(voice, txn); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteScope removes every voice balance in a scope without touching other
// scopes. Requires admin authorization.
func (e *Engine) DeleteScope(auth, scope string) error {
	if err := e.requireAdmin(auth); err != nil {
		return err
	}
	if !validScope(scope) {
		return fmt.Errorf("unknown scope %q: %w", scope, ErrNotFound)
	}
	return e.db.DeleteVoicesByScope(scope, nil)
}

// EligibleVoice returns the total voice eligible to vote in a scope: free
// balances plus voice currently committed to open votes
func (e *Engine) EligibleVoice(
	scope string,
	txn *database.Txn,
) (int64, error) {
	free, err := e.db.FreeVoice(scope, txn)
	if err != nil {
		return 0, err
	}
	committed, err := e.db.CommittedVoice(scope, txn)
	if err != nil {
		return 0, err
	}
	return free + committed, nil
}
