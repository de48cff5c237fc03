// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
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

// Package telemetry provides opt-in Prometheus metrics shared across every
// service in the checkout pipeline. Like the teacher's churn package, every
// public function is a safe no-op until Enable is called, so hot paths never
// pay for metrics they don't use.
package telemetry

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var enabled atomic.Bool

var (
	checkoutOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Total checkout requests by outcome (approved, missing_order_id, rejected_fraud, rejected_transaction, enqueue_failed)",
	}, []string{"outcome"})

	decrementConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_decrement_conflicts_total",
		Help: "Total DecrementStock calls that failed because stock was insufficient",
	})

	decrementSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_decrement_success_total",
		Help: "Total DecrementStock calls that succeeded",
	})

	electionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "executor_elections_total",
		Help: "Total bully elections started by this replica",
	})

	queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "order_queue_depth",
		Help: "Current number of orders waiting in the priority queue",
	})
)

func init() {
	prometheus.MustRegister(checkoutOutcomesTotal, decrementConflictsTotal, decrementSuccessTotal, electionsTotal, queueDepth)
}

// Enable turns on metric recording and, when addr is non-empty, starts a
// dedicated HTTP server exposing /metrics at addr.
func Enable(addr string) {
	enabled.Store(true)
	if addr != "" {
		startMetricsEndpoint(addr)
	}
}

// Enabled reports whether telemetry is active.
func Enabled() bool { return enabled.Load() }

// ObserveCheckoutOutcome records a terminal outcome of POST /checkout.
func ObserveCheckoutOutcome(outcome string) {
	if !enabled.Load() {
		return
	}
	checkoutOutcomesTotal.WithLabelValues(outcome).Inc()
}

// ObserveDecrement records the result of one DecrementStock call.
func ObserveDecrement(success bool) {
	if !enabled.Load() {
		return
	}
	if success {
		decrementSuccessTotal.Inc()
	} else {
		decrementConflictsTotal.Inc()
	}
}

// ObserveElectionStarted records that this replica started a bully election.
func ObserveElectionStarted() {
	if !enabled.Load() {
		return
	}
	electionsTotal.Inc()
}

// SetQueueDepth reports the current number of orders waiting in the queue.
func SetQueueDepth(n int) {
	if !enabled.Load() {
		return
	}
	queueDepth.Set(float64(n))
}

func startMetricsEndpoint(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}
