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

var ErrCycleNotFound = errors.New("cycle not found")

// CycleStats records the window of one scheduler cycle. One row is written
// per on-period invocation.
type CycleStats struct {
	CycleNumber uint64 `gorm:"primarykey"`
	StartTime   int64  `gorm:"not null"` // unix seconds
	EndTime     int64  `gorm:"not null"`
}

// TableName returns the table name
func (CycleStats) TableName() string {
	return "cycle_stats"
}
