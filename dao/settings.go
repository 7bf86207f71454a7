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

	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/database/models"
)

// Setting names read by the engine. The settings table is a flat
// string-keyed store configured externally; unset names fall back to the
// defaults below.
const (
	SettingRefsNewPrice  = "refsnewprice" // minimum stake for referenda
	SettingPropCmpMin    = "prop.cmp.min" // minimum stake for campaign proposals
	SettingPropAlMin     = "prop.al.min"  // minimum stake for alliance proposals
	SettingPropQuorum    = "propquorum"   // percent of eligible voice that must participate
	SettingPropMajority  = "propmajority" // percent of participating voice that must favour
	SettingBatchSize     = "batchsize"    // max entries per batched invocation
	SettingDecayTime     = "decaytime"    // seconds since last update before decay applies
	SettingPropDecaySec  = "propdecaysec" // minimum seconds between decay applications
	SettingVoiceDecayPct = "vdecayprntge" // percent removed per decay application
	SettingDhoVoteRecast = "dho.v.recast" // seconds before a DHO vote expires
	SettingRefundOnUnity = "refund.unity" // stake fraction refunded when unity met without quorum
)

var defaultIntSettings = map[string]int64{
	SettingRefsNewPrice:  10000,   // 1.0000 SEEDS
	SettingPropCmpMin:    5550000, // 555.0000 SEEDS
	SettingPropAlMin:     5550000,
	SettingPropQuorum:    7,
	SettingPropMajority:  80,
	SettingBatchSize:     50,
	SettingDecayTime:     2592000,
	SettingPropDecaySec:  604800,
	SettingVoiceDecayPct: 15,
	SettingDhoVoteRecast: 2592000,
}

var defaultFloatSettings = map[string]float64{
	SettingRefundOnUnity: 0.95,
}

// SettingInt returns an integer setting, falling back to the default when
// the name is not configured
func (e *Engine) SettingInt(
	name string,
	txn *database.Txn,
) (int64, error) {
	setting, err := e.db.GetSetting(name, txn)
	if err != nil {
		if errors.Is(err, models.ErrSettingNotFound) {
			if def, ok := defaultIntSettings[name]; ok {
				return def, nil
			}
			return 0, fmt.Errorf("setting %q: %w", name, ErrNotFound)
		}
		return 0, err
	}
	if setting.IsFloat {
		return int64(setting.FloatValue), nil
	}
	return setting.IntValue, nil
}

// SettingFloat returns a float setting, falling back to the default when the
// name is not configured
func (e *Engine) SettingFloat(
	name string,
	txn *database.Txn,
) (float64, error) {
	setting, err := e.db.GetSetting(name, txn)
	if err != nil {
		if errors.Is(err, models.ErrSettingNotFound) {
			if def, ok := defaultFloatSettings[name]; ok {
				return def, nil
			}
			if def, ok := defaultIntSettings[name]; ok {
				return float64(def), nil
			}
			return 0, fmt.Errorf("setting %q: %w", name, ErrNotFound)
		}
		return 0, err
	}
	if setting.IsFloat {
		return setting.FloatValue, nil
	}
	return float64(setting.IntValue), nil
}

// ConfigureInt sets an integer setting. Requires admin authorization.
func (e *Engine) ConfigureInt(auth, name string, value int64) error {
	if err := e.requireAdmin(auth); err != nil {
		return err
	}
	return e.setSettingInt(name, value, nil)
}

// ConfigureFloat sets a float setting. Requires admin authorization.
func (e *Engine) ConfigureFloat(auth, name string, value float64) error {
	if err := e.requireAdmin(auth); err != nil {
		return err
	}
	return e.db.SetSetting(&models.Setting{
		Name:       name,
		FloatValue: value,
		IsFloat:    true,
	}, nil)
}

func (e *Engine) setSettingInt(
	name string,
	value int64,
	txn *database.Txn,
) error {
	return e.db.SetSetting(&models.Setting{
		Name:     name,
		IntValue: value,
	}, txn)
}
