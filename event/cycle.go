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

import "time"

// CycleStartedEventType is the event type for scheduler cycle boundaries
const CycleStartedEventType = EventType("cycle.started")

// CycleStartedEvent is emitted at the start of each on-period invocation,
// after participation settlement but before proposal processing.
type CycleStartedEvent struct {
	// CycleNumber is the cycle that is starting
	CycleNumber uint64
	// StartTime is the start of the cycle window
	StartTime time.Time
	// EndTime is the projected end of the cycle window
	EndTime time.Time
}
