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

import "errors"

// Engine error taxonomy. Validation failures abort the triggering action
// atomically; concrete errors wrap one of these so callers can classify with
// errors.Is.
var (
	// ErrNotFound indicates an unknown proposal, account, scope or DHO
	ErrNotFound = errors.New("not found")
	// ErrInvalidState indicates an action attempted in the wrong lifecycle
	// state, e.g. voting on a staged proposal or a direct vote while
	// delegated
	ErrInvalidState = errors.New("invalid state")
	// ErrInsufficientVoice indicates a vote amount exceeding available voice
	ErrInsufficientVoice = errors.New("insufficient voice")
	// ErrInsufficientBalance indicates a stake or payout exceeding available
	// funds
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrUnauthorized indicates the caller lacks the required authorization
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAlreadyProcessed indicates re-entrant execution of a guarded side
	// effect
	ErrAlreadyProcessed = errors.New("already processed")
)
