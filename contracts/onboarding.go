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

import "sync"

// Onboarding is the invite-campaign collaborator. Approved campaign invite
// proposals register a funded campaign here; invite issuance itself happens
// outside the engine.
type Onboarding interface {
	// CreateCampaign registers a funded invite campaign and returns its ID
	CreateCampaign(
		owner string,
		maxAmountPerInvite, planted, reward int64,
		symbol string,
	) (uint64, error)
}

// MemoryCampaign is one registered invite campaign
type MemoryCampaign struct {
	Owner              string
	MaxAmountPerInvite int64
	Planted            int64
	Reward             int64
	Symbol             string
}

// MemoryOnboarding is an in-memory Onboarding implementation
type MemoryOnboarding struct {
	mu        sync.Mutex
	nextID    uint64
	campaigns map[uint64]MemoryCampaign
}

// NewMemoryOnboarding creates an empty in-memory onboarding registry
func NewMemoryOnboarding() *MemoryOnboarding {
	return &MemoryOnboarding{
		campaigns: make(map[uint64]MemoryCampaign),
	}
}

// CreateCampaign registers a campaign and returns its ID
func (o *MemoryOnboarding) CreateCampaign(
	owner string,
	maxAmountPerInvite, planted, reward int64,
	symbol string,
) (uint64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	o.campaigns[o.nextID] = MemoryCampaign{
		Owner:              owner,
		MaxAmountPerInvite: maxAmountPerInvite,
		Planted:            planted,
		Reward:             reward,
		Symbol:             symbol,
	}
	return o.nextID, nil
}

// Campaign returns a registered campaign by ID
func (o *MemoryOnboarding) Campaign(id uint64) (MemoryCampaign, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	campaign, ok := o.campaigns[id]
	return campaign, ok
}
