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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type engineMetrics struct {
	cyclesTotal       prometheus.Counter
	proposalsPassed   prometheus.Counter
	proposalsRejected prometheus.Counter
	payoutsTotal      prometheus.Counter
	decayRunsTotal    prometheus.Counter
	openProposals     prometheus.Gauge
}

func (m *engineMetrics) init(promRegistry prometheus.Registerer) {
	if promRegistry == nil {
		promRegistry = prometheus.NewRegistry()
	}
	promautoFactory := promauto.With(promRegistry)
	m.cyclesTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "dao_cycles_total",
		Help: "total number of scheduler cycles run",
	})
	m.proposalsPassed = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "dao_proposals_passed_total",
		Help: "total number of proposals passed",
	})
	m.proposalsRejected = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "dao_proposals_rejected_total",
		Help: "total number of proposals rejected",
	})
	m.payoutsTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "dao_payouts_total",
		Help: "total number of payout tranches applied",
	})
	m.decayRunsTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "dao_voice_decay_runs_total",
		Help: "total number of voice decay batch runs",
	})
	m.openProposals = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "dao_open_proposals",
		Help: "current number of proposals not yet done",
	})
}
