// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

type execMetrics struct {
	registry  metrics.Registry
	txOk      metrics.Counter
	txFail    metrics.Counter
	execTimer metrics.Timer
	height    metrics.Gauge
	events    metrics.Meter
}

func newExecMetrics() *execMetrics {
	registry := metrics.NewRegistry()
	return &execMetrics{
		registry:  registry,
		txOk:      metrics.GetOrRegisterCounter("exec.tx.ok", registry),
		txFail:    metrics.GetOrRegisterCounter("exec.tx.fail", registry),
		execTimer: metrics.GetOrRegisterTimer("exec.tx.time", registry),
		height:    metrics.GetOrRegisterGauge("exec.height", registry),
		events:    metrics.GetOrRegisterMeter("exec.events", registry),
	}
}

func (m *execMetrics) ok(action string, height int64, start time.Time) {
	m.txOk.Inc(1)
	metrics.GetOrRegisterCounter("exec.action."+action, m.registry).Inc(1)
	m.height.Update(height)
	m.execTimer.UpdateSince(start)
}

func (m *execMetrics) fail(action string, start time.Time) {
	m.txFail.Inc(1)
	metrics.GetOrRegisterCounter("exec.action."+action+".fail", m.registry).Inc(1)
	m.execTimer.UpdateSince(start)
}
