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

var ErrSettingNotFound = errors.New("setting not found")

// Setting is one entry of the flat string-keyed configuration store. Values
// are polymorphic over integer and float encodings; IsFloat selects which
// column holds the value.
type Setting struct {
	ID         uint    `gorm:"primarykey"`
	Name       string  `gorm:"uniqueIndex;size:32;not null"`
	IntValue   int64   `gorm:"not null"`
	FloatValue float64 `gorm:"not null"`
	IsFloat    bool    `gorm:"not null"`
}

// TableName returns the table name
func (Setting) TableName() string {
	return "setting"
}
