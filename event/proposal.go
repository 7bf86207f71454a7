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

// ProposalStatusEventType is the event type for proposal status transitions
const ProposalStatusEventType = EventType("proposal.statuschange")

// ProposalStatusEvent is emitted when the scheduler moves a proposal to a new
// status or stage.
type ProposalStatusEvent struct {
	ProposalID uint
	OldStatus  uint8
	NewStatus  uint8
	Stage      uint8
	Cycle      uint64
}

// ProposalPayoutEventType is the event type for proposal payouts
const ProposalPayoutEventType = EventType("proposal.payout")

// ProposalPayoutEvent is emitted when a payout tranche is applied to a passed
// proposal.
type ProposalPayoutEvent struct {
	ProposalID uint
	Recipient  string
	Amount     int64
	Symbol     string
	Cycle      uint64
}
