// Package metrics wraps Codex.verify calls with Prometheus counters and a duration
// histogram broken down by outcome, grounded on the nova protocol's verified/accepted/
// rejected counter triple (register-then-increment, never re-derive from state).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ultrasonic.dev/sonic/ids"
	"ultrasonic.dev/sonic/sonic"
)

// Verifier wraps a Codex so every call to Verify is counted and timed.
type Verifier struct {
	codex sonic.Codex

	attempts  prometheus.Counter
	succeeded prometheus.Counter
	failed    *prometheus.CounterVec
	duration  prometheus.Histogram
}

// New builds a Verifier around codex, registering its metrics with registerer.
func New(codex sonic.Codex, registerer prometheus.Registerer) (*Verifier, error) {
	v := &Verifier{
		codex: codex,
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ultrasonic_verify_attempts_total",
			Help: "Number of Codex.Verify calls made",
		}),
		succeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ultrasonic_verify_succeeded_total",
			Help: "Number of Codex.Verify calls that accepted the operation",
		}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ultrasonic_verify_failed_total",
			Help: "Number of Codex.Verify calls rejected, by CallError kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ultrasonic_verify_duration_seconds",
			Help:    "Codex.Verify call latency",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{v.attempts, v.succeeded, v.failed, v.duration} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Verify calls the wrapped Codex's Verify and records the outcome.
func (v *Verifier) Verify(contractId ids.ContractId, op sonic.Operation, mem sonic.Memory, repo sonic.LibRepo) (*sonic.VerifiedOperation, error) {
	v.attempts.Inc()
	start := time.Now()
	vo, err := v.codex.Verify(contractId, op, mem, repo)
	v.duration.Observe(time.Since(start).Seconds())

	if err != nil {
		kind := "unknown"
		if ce, ok := err.(*sonic.CallError); ok {
			kind = string(ce.Kind)
		}
		v.failed.WithLabelValues(kind).Inc()
		return nil, err
	}
	v.succeeded.Inc()
	return vo, nil
}
