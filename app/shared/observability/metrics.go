package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScorecardMetrics records scoring service and handler activity.
type ScorecardMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordGameScored(ctx context.Context, complete bool, total int)
	RecordBallRejected(ctx context.Context, frame, ball int)
	RecordHandlerAttempt(ctx context.Context, handler string)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
	RecordHandlerDuration(ctx context.Context, handler string, d time.Duration)
}

type prometheusScorecardMetrics struct {
	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	gamesScored      *prometheus.CounterVec
	finalScores      prometheus.Histogram
	ballsRejected    *prometheus.CounterVec
	handlers         *prometheus.CounterVec
	handlerLatency   *prometheus.HistogramVec
}

// NewPrometheusScorecardMetrics registers the scorecard collectors on reg.
func NewPrometheusScorecardMetrics(reg prometheus.Registerer, namespace string) ScorecardMetrics {
	m := &prometheusScorecardMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scorecard",
			Name:      "operations_total",
			Help:      "Scorecard service operations by outcome.",
		}, []string{"operation", "outcome"}),
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scorecard",
			Name:      "operation_duration_seconds",
			Help:      "Scorecard service operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		gamesScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scorecard",
			Name:      "games_scored_total",
			Help:      "Player snapshots scored, split by completeness.",
		}, []string{"complete"}),
		finalScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scorecard",
			Name:      "final_score",
			Help:      "Final scores of complete games.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}),
		ballsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scorecard",
			Name:      "balls_rejected_total",
			Help:      "Ball entries refused by the input gate.",
		}, []string{"ball"}),
		handlers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scorecard",
			Name:      "handler_calls_total",
			Help:      "Transport handler invocations by outcome.",
		}, []string{"handler", "outcome"}),
		handlerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scorecard",
			Name:      "handler_duration_seconds",
			Help:      "Transport handler latency.",
		}, []string{"handler"}),
	}
	reg.MustRegister(
		m.operations,
		m.operationLatency,
		m.gamesScored,
		m.finalScores,
		m.ballsRejected,
		m.handlers,
		m.handlerLatency,
	)
	return m
}

func (m *prometheusScorecardMetrics) RecordOperationAttempt(_ context.Context, op string) {
	m.operations.WithLabelValues(op, "attempt").Inc()
}

func (m *prometheusScorecardMetrics) RecordOperationSuccess(_ context.Context, op string) {
	m.operations.WithLabelValues(op, "success").Inc()
}

func (m *prometheusScorecardMetrics) RecordOperationFailure(_ context.Context, op string) {
	m.operations.WithLabelValues(op, "failure").Inc()
}

func (m *prometheusScorecardMetrics) RecordOperationDuration(_ context.Context, op string, d time.Duration) {
	m.operationLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *prometheusScorecardMetrics) RecordGameScored(_ context.Context, complete bool, total int) {
	if complete {
		m.gamesScored.WithLabelValues("true").Inc()
		m.finalScores.Observe(float64(total))
		return
	}
	m.gamesScored.WithLabelValues("false").Inc()
}

func (m *prometheusScorecardMetrics) RecordBallRejected(_ context.Context, _, ball int) {
	label := "first"
	switch ball {
	case 2:
		label = "second"
	case 3:
		label = "third"
	}
	m.ballsRejected.WithLabelValues(label).Inc()
}

func (m *prometheusScorecardMetrics) RecordHandlerAttempt(_ context.Context, h string) {
	m.handlers.WithLabelValues(h, "attempt").Inc()
}

func (m *prometheusScorecardMetrics) RecordHandlerSuccess(_ context.Context, h string) {
	m.handlers.WithLabelValues(h, "success").Inc()
}

func (m *prometheusScorecardMetrics) RecordHandlerFailure(_ context.Context, h string) {
	m.handlers.WithLabelValues(h, "failure").Inc()
}

func (m *prometheusScorecardMetrics) RecordHandlerDuration(_ context.Context, h string, d time.Duration) {
	m.handlerLatency.WithLabelValues(h).Observe(d.Seconds())
}

// NoOpMetrics satisfies ScorecardMetrics and records nothing.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordGameScored(context.Context, bool, int)                    {}
func (NoOpMetrics) RecordBallRejected(context.Context, int, int)                   {}
func (NoOpMetrics) RecordHandlerAttempt(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration)   {}
