package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	"github.com/mikiasgoitom/CampusGuide/internal/usecase"
)

const namespace = "campus_guide"

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	registrations       *prometheus.CounterVec
	reviewsCreated      prometheus.Counter
	moderationActions   *prometheus.CounterVec
	recomputeFailures   prometheus.Counter
	notificationFailure *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer in
// main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Completed registrations by account kind.",
		}, []string{"kind"}),
		reviewsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Reviews created.",
		}),
		moderationActions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_actions_total",
			Help:      "Review moderation actions by action.",
		}, []string{"action"}),
		recomputeFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rating_recompute_failures_total",
			Help:      "Rating recomputations that failed and were left to self-heal.",
		}),
		notificationFailure: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notifications that could not be dispatched, by kind.",
		}, []string{"kind"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

var _ usecase.Metrics = (*Metrics)(nil)

func (m *Metrics) RegistrationCompleted(kind entity.AccountKind) {
	m.registrations.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) ReviewCreated() { m.reviewsCreated.Inc() }

func (m *Metrics) ModerationApplied(action entity.ModerationAction) {
	m.moderationActions.WithLabelValues(string(action)).Inc()
}

func (m *Metrics) RecomputeFailed() { m.recomputeFailures.Inc() }

func (m *Metrics) NotificationFailed(kind contract.NotificationKind) {
	m.notificationFailure.WithLabelValues(string(kind)).Inc()
}

// ObserveHTTP records one request. route is the gin route template, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
