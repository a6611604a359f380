// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package metrics exports client handshake events as Prometheus metrics.
package metrics

import (
	"errors"
	"time"

	"github.com/pion/tls13"
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "pion_tls13"

var (
	handshakesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "handshakes_started_total",
			Help:      "Handshakes Started",
		},
	)
	handshakesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "handshakes_completed_total",
			Help:      "Handshakes Completed",
		},
		[]string{"cipher_suite"},
	)
	handshakeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "handshake_duration_seconds",
			Help:      "Duration of the TLS 1.3 Handshake",
			Buckets:   prometheus.ExponentialBuckets(0.001, 1.3, 35),
		},
		[]string{"cipher_suite"},
	)
	alerts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "alerts_total",
			Help:      "Alerts Sent and Received",
		},
		[]string{"dir", "description"},
	)
	keyUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "key_updates_total",
			Help:      "Traffic Key Updates",
		},
		[]string{"direction"},
	)
	downgrades = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "downgrades_total",
			Help:      "Handshakes Handed Over to TLS 1.2",
		},
	)
	connClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "connections_closed_total",
			Help:      "Connections Closed",
		},
		[]string{"reason"},
	)
)

// NewTracer returns a tracer for a single connection, registered with the
// default Prometheus registerer.
func NewTracer() *tls13.Tracer {
	return NewTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTracerWithRegisterer returns a tracer for a single connection using a
// given Prometheus registerer. A Tracer keeps per connection state and must
// not be shared.
func NewTracerWithRegisterer(registerer prometheus.Registerer) *tls13.Tracer {
	for _, c := range [...]prometheus.Collector{
		handshakesStarted,
		handshakesCompleted,
		handshakeDuration,
		alerts,
		keyUpdates,
		downgrades,
		connClosed,
	} {
		if err := registerer.Register(c); err != nil {
			if ok := errors.As(err, &prometheus.AlreadyRegisteredError{}); !ok {
				panic(err)
			}
		}
	}

	var startTime time.Time

	return &tls13.Tracer{
		StartedHandshake: func() {
			startTime = time.Now()
			handshakesStarted.Inc()
		},
		CompletedHandshake: func(suite ciphersuite.ID) {
			tags := getStringSlice()
			defer putStringSlice(tags)

			*tags = append(*tags, suite.String())
			handshakesCompleted.WithLabelValues(*tags...).Inc()
			if !startTime.IsZero() {
				handshakeDuration.WithLabelValues(*tags...).Observe(time.Since(startTime).Seconds())
			}
		},
		SentAlert: func(a alert.Alert) {
			observeAlert("sent", a)
		},
		ReceivedAlert: func(a alert.Alert) {
			observeAlert("received", a)
		},
		UpdatedKeys: func(direction tls13.KeyDirection) {
			keyUpdates.WithLabelValues(direction.String()).Inc()
		},
		Downgraded: func() {
			downgrades.Inc()
		},
		ClosedConnection: func(err error) {
			connClosed.WithLabelValues(closeReason(err)).Inc()
		},
	}
}

func observeAlert(dir string, a alert.Alert) {
	tags := getStringSlice()
	defer putStringSlice(tags)

	*tags = append(*tags, dir, a.Description.String())
	alerts.WithLabelValues(*tags...).Inc()
}

func closeReason(err error) string {
	if err == nil || errors.Is(err, tls13.ErrConnClosed) {
		return "local"
	}
	if desc, ok := alert.DescriptionOf(err); ok {
		return desc.String()
	}

	return "error"
}
