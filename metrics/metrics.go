// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for the voting flow.
//
// Handler returns the /metrics endpoint handler; the voting service records
// one observation per submission attempt, labeled by outcome status.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VoteAttempts counts submission attempts by final status
	// (success, rejected_already_voted, ...).
	VoteAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vote_attempts_total",
		Help: "Total ballot submission attempts by outcome status.",
	}, []string{"status"})

	// IdentityCheckFailures counts identity-check store errors by call site
	// (preflight, submit).
	IdentityCheckFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "identity_check_failures_total",
		Help: "Identity check query failures by call site.",
	}, []string{"site"})

	// AttemptLogFailures counts swallowed attempt-log write failures.
	AttemptLogFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attempt_log_failures_total",
		Help: "Vote attempt audit rows that could not be written.",
	})
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
