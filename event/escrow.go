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

package event

// EscrowTriggerEventType is the event type for inbound escrow trigger events
const EscrowTriggerEventType = EventType("escrow.trigger")

// EscrowTriggerEvent is an inbound message from the escrow collaborator
// reporting that an externally gated condition fired for a lock. Handling is
// idempotent keyed by (Name, LockID): triggers for voided locks are no-ops
// and repeated triggers for live locks are ignored.
type EscrowTriggerEvent struct {
	// Name identifies the trigger condition, e.g. "golive"
	Name string
	// Source is the account that fired the trigger
	Source string
	// LockID identifies the escrow lock the trigger applies to
	LockID uint64
}
