// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors. Create one per registry with New.
type Metrics struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	cascadesTotal   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	backlog         *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "procurement",
			Name:      "commands_total",
			Help:      "Commands handled, by command and outcome kind.",
		}, []string{"command", "outcome"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "procurement",
			Name:      "command_duration_seconds",
			Help:      "Command handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		cascadesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "procurement",
			Name:      "cascades_total",
			Help:      "Cascaded status changes and created records, by kind.",
		}, []string{"cascade"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "procurement",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "procurement",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		backlog: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "procurement",
			Name:      "pending_records",
			Help:      "Records in Pending status, by stage.",
		}, []string{"stage"}),
	}

	reg.MustRegister(
		m.commandsTotal,
		m.commandDuration,
		m.cascadesTotal,
		m.httpRequests,
		m.httpDuration,
		m.backlog,
	)

	return m
}

// ObserveCommand records one handled command. outcome is "ok" or an error kind.
func (m *Metrics) ObserveCommand(command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(command, outcome).Inc()
	m.commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// Cascade counts one cascaded change, e.g. "request_approved" or "order_created".
func (m *Metrics) Cascade(name string) {
	if m == nil {
		return
	}
	m.cascadesTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetBacklog publishes the number of Pending records of a stage.
func (m *Metrics) SetBacklog(stage string, count int64) {
	if m == nil {
		return
	}
	m.backlog.WithLabelValues(stage).Set(float64(count))
}
