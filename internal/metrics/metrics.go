package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	SignalsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signalboard",
			Subsystem: "ingest",
			Name:      "signals_total",
			Help:      "Signal ingestion calls by outcome",
		},
		[]string{"outcome"}, // created, updated, rejected, error
	)

	VerificationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signalboard",
			Subsystem: "verify",
			Name:      "requests_total",
			Help:      "Verification submissions by outcome",
		},
		[]string{"outcome"}, // accepted, duplicate, rejected, error
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(SignalsIngested, VerificationRequests)
	})
}
