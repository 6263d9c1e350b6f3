package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics глобальный контейнер метрик
type Metrics struct {
	// RPC метрики
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Бизнес-метрики
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	CorridorSignals    *prometheus.HistogramVec
	SimulationRating   prometheus.Histogram
	BadScenariosTotal  *prometheus.CounterVec
	ZeroSpeedWarnings  prometheus.Counter

	// Кэш
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Информация о сервисе
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics инициализирует метрики
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rpc_requests_total",
				Help:      "Total number of RPC requests",
			},
			[]string{"method", "status"},
		),

		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rpc_request_duration_seconds",
				Help:      "Duration of RPC requests",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),

		RequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rpc_requests_in_flight",
				Help:      "Current number of RPC requests being processed",
			},
		),

		SimulationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "simulations_total",
				Help:      "Total number of corridor simulations",
			},
			[]string{"status"},
		),

		SimulationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "simulation_duration_seconds",
				Help:      "Duration of corridor simulations",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"operation"},
		),

		CorridorSignals: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "corridor_signals_total",
				Help:      "Number of signals in processed corridors",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 500, 1000, 5000},
			},
			[]string{"operation"},
		),

		SimulationRating: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "simulation_rating",
				Help:      "Distribution of aggregate flow ratings",
				Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			},
		),

		BadScenariosTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bad_scenarios_total",
				Help:      "Total number of bad scenarios by reason",
			},
			[]string{"reason"},
		),

		ZeroSpeedWarnings: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "zero_speed_warnings_total",
				Help:      "Total number of zero-speed warnings emitted by the core",
			},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of simulation cache hits",
			},
		),

		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of simulation cache misses",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service metadata",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get возвращает глобальный контейнер метрик.
// Если InitMetrics не вызывался, инициализирует с дефолтным namespace.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("trafficsim", "")
	}
	return defaultMetrics
}

// Handler возвращает HTTP handler для /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest записывает метрики одного RPC запроса
func (m *Metrics) RecordRequest(method, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordBadScenario увеличивает счётчик плохих сценариев по причине
func (m *Metrics) RecordBadScenario(reason string) {
	m.BadScenariosTotal.WithLabelValues(reason).Inc()
}

// SetServiceInfo выставляет метаданные сервиса
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// RecordSimulation записывает бизнес-метрики одного прохода симуляции
func (m *Metrics) RecordSimulation(signals int, rating float64, duration time.Duration) {
	m.SimulationsTotal.WithLabelValues("ok").Inc()
	m.SimulationDuration.WithLabelValues("simulate").Observe(duration.Seconds())
	m.CorridorSignals.WithLabelValues("simulate").Observe(float64(signals))
	m.SimulationRating.Observe(rating)
}
