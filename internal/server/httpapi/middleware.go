package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/dmitrijs2005/clinicdesk/internal/server/auth"
	"github.com/dmitrijs2005/clinicdesk/internal/server/metrics"
	"github.com/labstack/echo/v4"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the access token claims installed by Bearer.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func Recovery(log logging.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = logging.Discard()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)
					log.Error(c.Request().Context(), "panic recovered",
						"panic", fmt.Sprintf("%v", r), "stack", string(stack[:n]))
					err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
				}
			}()
			return next(c)
		}
	}
}

// RequestLogger logs and counts every request after it completes.
func RequestLogger(log logging.Logger, m *metrics.Server) echo.MiddlewareFunc {
	if log == nil {
		log = logging.Discard()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = toHTTPError(err).Code
			}
			route := c.Path()
			req := c.Request()

			m.Request(req.Method, route, status)
			log.Debug(req.Context(), "http request",
				"method", req.Method, "route", route, "status", status, "duration", time.Since(start))
			return err
		}
	}
}

// Bearer requires a valid "Authorization: Bearer <jwt>" header and puts the
// token's claims into the request context.
func Bearer(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header required")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims, err := auth.ParseToken(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				return toHTTPError(err)
			}

			ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
