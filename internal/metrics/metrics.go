/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package metrics wires the client's connection lifecycle into Prometheus
// instrumentation. A nil *Recorder is valid and every method is a no-op,
// so callers that never configure metrics pay nothing for them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns the envygo Prometheus collectors. Construct with New and
// register with a Registerer; the zero value is not usable but a nil
// *Recorder is — every method checks for it first.
type Recorder struct {
	connectionState     prometheus.Gauge
	reconnectAttempts   prometheus.Counter
	commandsSent        prometheus.Counter
	commandAcks         *prometheus.CounterVec
	enumerationDuration *prometheus.HistogramVec
}

// New builds a Recorder and registers its collectors with reg. Pass
// prometheus.DefaultRegisterer for the global registry, or a dedicated
// *prometheus.Registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		connectionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "envy",
			Name:      "connection_state",
			Help:      "1 if the client currently holds a live connection, else 0.",
		}),
		reconnectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "envy",
			Name:      "reconnect_attempts_total",
			Help:      "Total number of reconnect attempts made by the supervisor.",
		}),
		commandsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "envy",
			Name:      "commands_sent_total",
			Help:      "Total number of command lines written to the transport.",
		}),
		commandAcks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "envy",
			Name:      "command_acks_total",
			Help:      "Total number of command acknowledgements, partitioned by result.",
		}, []string{"result"}),
		enumerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "envy",
			Name:      "enumeration_duration_seconds",
			Help:      "Wall time spent collecting an enumeration, partitioned by verb.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"verb"}),
	}
	reg.MustRegister(r.connectionState, r.reconnectAttempts, r.commandsSent, r.commandAcks, r.enumerationDuration)
	return r
}

// SetConnectionState records the current connected/disconnected state.
func (r *Recorder) SetConnectionState(connected bool) {
	if r == nil {
		return
	}
	if connected {
		r.connectionState.Set(1)
	} else {
		r.connectionState.Set(0)
	}
}

// IncReconnectAttempts counts one reconnect attempt.
func (r *Recorder) IncReconnectAttempts() {
	if r == nil {
		return
	}
	r.reconnectAttempts.Inc()
}

// IncCommandsSent counts one line written to the transport.
func (r *Recorder) IncCommandsSent() {
	if r == nil {
		return
	}
	r.commandsSent.Inc()
}

// IncCommandAcks counts one ack, result being "ok", "error", or
// "not_connected".
func (r *Recorder) IncCommandAcks(result string) {
	if r == nil {
		return
	}
	r.commandAcks.WithLabelValues(result).Inc()
}

// ObserveEnumerationDuration records how long an enumeration for verb took.
func (r *Recorder) ObserveEnumerationDuration(verb string, d time.Duration) {
	if r == nil {
		return
	}
	r.enumerationDuration.WithLabelValues(verb).Observe(d.Seconds())
}
