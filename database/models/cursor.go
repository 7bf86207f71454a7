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

// BatchCursor persists the resume point of a batched background job between
// invocations. Jobs that scan by primary key use NextKey; jobs that scan an
// externally ordered set use NextName, the last processed key in that order.
// A zero value means the next invocation starts a fresh pass.
type BatchCursor struct {
	ID        uint   `gorm:"primarykey"`
	JobName   string `gorm:"uniqueIndex;size:32;not null"`
	NextKey   uint64 `gorm:"not null"`
	NextName  string `gorm:"size:64"`
	UpdatedAt int64  `gorm:"not null"` // unix seconds
}

// TableName returns the table name
func (BatchCursor) TableName() string {
	return "batch_cursor"
}
