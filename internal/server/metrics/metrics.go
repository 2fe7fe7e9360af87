// Package metrics defines the Prometheus collectors exported by the backend.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinicdesk_server"

// Server groups the backend collectors. A nil *Server records nothing.
type Server struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec

	HubConnections prometheus.Gauge
	HubBroadcasts  *prometheus.CounterVec
	HubDropped     prometheus.Counter

	TokensPurged prometheus.Counter
}

func New() *Server {
	m := &Server{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HubConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "hub", Name: "connections",
			Help: "Currently connected desks.",
		}),
		HubBroadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "hub", Name: "broadcasts_total",
			Help: "Events fanned out by type.",
		}, []string{"type"}),
		HubDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "hub", Name: "dropped_total",
			Help: "Per-desk deliveries dropped because the send queue was full.",
		}),
		TokensPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "refresh_tokens_purged_total",
			Help: "Expired refresh tokens removed by the janitor.",
		}),
	}

	m.registry.MustRegister(m.HTTPRequests, m.HubConnections, m.HubBroadcasts, m.HubDropped, m.TokensPurged)
	return m
}

func (m *Server) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Server) Request(method, route string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

func (m *Server) Connected() {
	if m != nil {
		m.HubConnections.Inc()
	}
}

func (m *Server) Disconnected() {
	if m != nil {
		m.HubConnections.Dec()
	}
}

func (m *Server) Broadcast(eventType string) {
	if m != nil {
		m.HubBroadcasts.WithLabelValues(eventType).Inc()
	}
}

func (m *Server) Dropped() {
	if m != nil {
		m.HubDropped.Inc()
	}
}

func (m *Server) Purged(n int64) {
	if m != nil && n > 0 {
		m.TokensPurged.Add(float64(n))
	}
}
