package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cart"

var (
	EventsAppended = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_appended_total",
		Help:      "Total number of domain events appended to the event store",
	})
	EventsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_skipped_total",
		Help:      "Event records skipped on load because they could not be decoded",
	}, []string{"event_type"})
	AppendConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "append_conflicts_total",
		Help:      "Appends rejected because another writer took the version first",
	})

	OutboxClaimed = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "outbox_claim_batch_size",
		Help:      "Number of outbox messages claimed per poll",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
	OutboxPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_published_total",
		Help:      "Outbox messages published successfully",
	})
	OutboxFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_publish_failures_total",
		Help:      "Outbox publish attempts that failed",
	})
	OutboxDeadLettered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_dead_lettered_total",
		Help:      "Outbox messages moved to the dead-letter state",
	})
	OutboxStaleReleased = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_stale_locks_released_total",
		Help:      "Outbox claims released by the stale lock sweep",
	})

	IdempotencyOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_outcomes_total",
		Help:      "Idempotency guard outcomes by kind",
	}, []string{"outcome"})

	ReplayedCarts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "replayed_carts_total",
		Help:      "Carts rebuilt by the replay job, by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		EventsAppended,
		EventsSkipped,
		AppendConflicts,
		OutboxClaimed,
		OutboxPublished,
		OutboxFailed,
		OutboxDeadLettered,
		OutboxStaleReleased,
		IdempotencyOutcomes,
		ReplayedCarts,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
