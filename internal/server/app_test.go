package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/clinicdesk/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_WiresRouter(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.LogLevel = "error"

	app, err := NewApp(c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/patients", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
