package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClient_IsNoop(t *testing.T) {
	var m *Client
	m.Request("GET", "ok")
	m.Refresh("expiry", true)
	m.Replay()
	m.SessionExpired()
	m.SetChannelState(2)
	m.Dial()
	m.Reconnect()
	m.Frame("patient_created")
	m.ParseError()
	m.HandlerFailure("patient_created")
}

func TestCounters(t *testing.T) {
	m := New()

	m.Request("GET", "ok")
	m.Request("GET", "ok")
	m.Refresh("expiry", false)
	m.Replay()
	m.Dial()
	m.Dial()
	m.Reconnect()
	m.SetChannelState(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues("expiry", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Replays))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChannelDials))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChannelReconnects))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChannelState))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ParseError()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "clinicdesk_channel_parse_errors_total 1"))
}
