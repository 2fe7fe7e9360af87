// Package httpapi exposes the backend over HTTP: the auth endpoints, the
// bearer-protected record endpoints, the realtime websocket and metrics.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/dmitrijs2005/clinicdesk/internal/server/metrics"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Users        UserService
	Records      RecordsService
	Realtime     http.Handler
	Metrics      *metrics.Server
	Logger       logging.Logger
	JWTSecret    []byte
	SecureCookie bool
}

// NewRouter builds the echo instance. Routes:
//
//	POST /api/auth/{register,login,refresh,logout}
//	/api/{patients,practitioners,encounters}...  (bearer)
//	GET  /ws
//	GET  /metrics
func NewRouter(d Deps) *echo.Echo {
	log := d.Logger
	if log == nil {
		log = logging.Discard()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(Recovery(log))
	e.Use(RequestLogger(log, d.Metrics))

	api := e.Group("/api")
	NewAuthHandler(d.Users, d.SecureCookie).RegisterRoutes(api.Group("/auth"))
	NewRecordsHandler(d.Records).RegisterRoutes(api.Group("", Bearer(d.JWTSecret)))

	if d.Realtime != nil {
		e.GET("/ws", echo.WrapHandler(d.Realtime))
	}
	e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}
