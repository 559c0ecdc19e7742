// Package metrics defines and registers all custom Prometheus metrics for
// the practice-platform API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crackit"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// QuizSubmissionsTotal counts graded daily-quiz submissions.
// Label:
//   - track: the user's preparation track
var QuizSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quiz_submissions_total",
		Help:      "Total number of daily quiz submissions, by track.",
	},
	[]string{"track"},
)

// QuizGradingDuration measures how long grading one submission takes.
var QuizGradingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "quiz_grading_duration_seconds",
		Help:      "Duration of grading a quiz submission against the question bank.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
// Label:
//   - route: the matched route pattern
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the sliding-window rate limiter.",
	},
	[]string{"route"},
)

// UploadsTotal counts upload validations.
// Label:
//   - result: "accepted", "too_large", "unsupported_type", "suspicious_type" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of upload validations, by result.",
	},
	[]string{"result"},
)

// QuizRecorder feeds quiz grading telemetry into the metrics above. It
// satisfies the quiz service's recorder interface so the core layer never
// imports this package.
type QuizRecorder struct{}

func (QuizRecorder) ObserveGrading(seconds float64) {
	QuizGradingDuration.Observe(seconds)
}

func (QuizRecorder) CountSubmission(track string) {
	QuizSubmissionsTotal.WithLabelValues(track).Inc()
}
