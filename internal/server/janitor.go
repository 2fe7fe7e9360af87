package server

import (
	"context"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/dmitrijs2005/clinicdesk/internal/server/metrics"
)

type purgeFunc func(ctx context.Context) (int64, error)

// runJanitor calls purge every interval until ctx is done. A non-positive
// interval disables it.
func runJanitor(ctx context.Context, interval time.Duration, purge purgeFunc, log logging.Logger, m *metrics.Server) {
	if interval <= 0 {
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := purge(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn(ctx, "refresh token purge failed", "error", err)
				}
				continue
			}
			m.Purged(n)
			if n > 0 {
				log.Info(ctx, "purged expired refresh tokens", "count", n)
			}
		}
	}
}
