package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	ReservationsCreated    prometheus.Counter
	SlotConflicts          prometheus.Counter
	ReservationTransitions *prometheus.CounterVec
	ReservationsSwept      prometheus.Counter
	LockWaitDuration       *prometheus.HistogramVec
}

// New регистрирует метрики в глобальном реестре prometheus (его отдает promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		ReservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations created in pending state",
			ConstLabels: constLabels,
		}),
		SlotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_slot_conflicts_total",
			Help:        "Create attempts rejected because the interval was no longer free",
			ConstLabels: constLabels,
		}),
		ReservationTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_transitions_total",
			Help:        "Reservation status transitions",
			ConstLabels: constLabels,
		}, []string{"to"}),
		ReservationsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_swept_total",
			Help:        "Pending reservations rewritten to expired by the sweeper",
			ConstLabels: constLabels,
		}),
		LockWaitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "reservation_lock_wait_seconds",
			Help:        "Time spent inside the exclusive section for a court and date",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"strategy", "status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ReservationsCreated,
		m.SlotConflicts,
		m.ReservationTransitions,
		m.ReservationsSwept,
		m.LockWaitDuration,
	)

	return m
}

// ObserveHTTP записывает результат HTTP запроса
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveQuery записывает длительность SQL операции
func (m *Metrics) ObserveQuery(operation string, err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// ObserveSection записывает время, проведенное в эксклюзивной секции
func (m *Metrics) ObserveSection(strategy string, err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.LockWaitDuration.WithLabelValues(strategy, status).Observe(d.Seconds())
}

// ReservationCreated увеличивает счетчик созданных бронирований
func (m *Metrics) ReservationCreated() {
	m.ReservationsCreated.Inc()
}

// SlotConflict увеличивает счетчик конфликтов слотов
func (m *Metrics) SlotConflict() {
	m.SlotConflicts.Inc()
}

// Transition фиксирует переход бронирования в статус to
func (m *Metrics) Transition(to string) {
	m.ReservationTransitions.WithLabelValues(to).Inc()
}

// Swept фиксирует количество строк, переведенных в expired
func (m *Metrics) Swept(n int64) {
	m.ReservationsSwept.Add(float64(n))
}
