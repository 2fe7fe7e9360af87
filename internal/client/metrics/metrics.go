// Package metrics defines the Prometheus collectors exported by the desk
// client's network-session layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinicdesk"

// Client groups the session-layer collectors. A nil *Client is valid and
// records nothing, so components can be built without metrics.
type Client struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	Refreshes       *prometheus.CounterVec
	Replays         prometheus.Counter
	SessionsExpired prometheus.Counter

	ChannelState       prometheus.Gauge
	ChannelDials       prometheus.Counter
	ChannelReconnects  prometheus.Counter
	ChannelFrames      *prometheus.CounterVec
	ChannelParseErrors prometheus.Counter
	HandlerFailures    *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Client {
	m := &Client{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "api", Name: "requests_total",
			Help: "API requests by method and final outcome.",
		}, []string{"method", "outcome"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "refresh_total",
			Help: "Access token refresh attempts by trigger and result.",
		}, []string{"trigger", "result"}),
		Replays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "api", Name: "replays_total",
			Help: "Requests resent after a successful refresh.",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "sessions_expired_total",
			Help: "Requests that ended in a forced logout.",
		}),
		ChannelState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "channel", Name: "state",
			Help: "Channel state: 0 disconnected, 1 connecting, 2 connected.",
		}),
		ChannelDials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "channel", Name: "dials_total",
			Help: "Channel connection attempts.",
		}),
		ChannelReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "channel", Name: "reconnects_total",
			Help: "Channel reconnection attempts scheduled after a close.",
		}),
		ChannelFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "channel", Name: "frames_total",
			Help: "Inbound channel frames by message type.",
		}, []string{"type"}),
		ChannelParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "channel", Name: "parse_errors_total",
			Help: "Inbound frames dropped because they could not be decoded.",
		}),
		HandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "channel", Name: "handler_failures_total",
			Help: "Subscriber callbacks that returned an error or panicked.",
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		m.Requests, m.Refreshes, m.Replays, m.SessionsExpired,
		m.ChannelState, m.ChannelDials, m.ChannelReconnects,
		m.ChannelFrames, m.ChannelParseErrors, m.HandlerFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Client) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Client) Request(method, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, outcome).Inc()
}

func (m *Client) Refresh(trigger string, ok bool) {
	if m == nil {
		return
	}
	result := "failed"
	if ok {
		result = "ok"
	}
	m.Refreshes.WithLabelValues(trigger, result).Inc()
}

func (m *Client) Replay() {
	if m == nil {
		return
	}
	m.Replays.Inc()
}

func (m *Client) SessionExpired() {
	if m == nil {
		return
	}
	m.SessionsExpired.Inc()
}

func (m *Client) SetChannelState(v int) {
	if m == nil {
		return
	}
	m.ChannelState.Set(float64(v))
}

func (m *Client) Dial() {
	if m == nil {
		return
	}
	m.ChannelDials.Inc()
}

func (m *Client) Reconnect() {
	if m == nil {
		return
	}
	m.ChannelReconnects.Inc()
}

func (m *Client) Frame(messageType string) {
	if m == nil {
		return
	}
	m.ChannelFrames.WithLabelValues(messageType).Inc()
}

func (m *Client) ParseError() {
	if m == nil {
		return
	}
	m.ChannelParseErrors.Inc()
}

func (m *Client) HandlerFailure(messageType string) {
	if m == nil {
		return
	}
	m.HandlerFailures.WithLabelValues(messageType).Inc()
}
