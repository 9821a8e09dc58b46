// Package metrics exposes the pipeline's Prometheus counters. Fan-out
// failures are swallowed on purpose, so these counters are the only
// place the silent-failure behavior stays visible.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FanOutsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_fanouts_started_total",
		Help: "Fan-out invocations started.",
	})

	FanOutsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_fanouts_skipped_total",
		Help: "Fan-outs ended early, by reason.",
	}, []string{"reason"})

	FanOutsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_fanouts_failed_total",
		Help: "Fan-outs that hit the orchestrator catch-all.",
	})

	InAppWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_inapp_written_total",
		Help: "In-app notification records written.",
	})

	InAppWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_inapp_write_failures_total",
		Help: "Failed in-app batch writes.",
	})

	PushSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_push_sent_total",
		Help: "Push notifications accepted by a provider, by channel.",
	}, []string{"channel"})

	PushFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_push_failed_total",
		Help: "Push notifications a provider rejected or dropped, by channel.",
	}, []string{"channel"})
)
