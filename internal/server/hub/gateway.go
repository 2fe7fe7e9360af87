package hub

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

const (
	maxFrameBytes   = 1 << 16
	writeTimeout    = 5 * time.Second
	pingInterval    = 30 * time.Second
	pingTimeout     = 10 * time.Second
	sessionIDLength = 10
)

type GatewayOptions struct {
	// OriginPatterns lists allowed cross-origin hosts, see websocket.AcceptOptions.
	OriginPatterns []string
	// InsecureSkipVerify disables the origin check. Development only.
	InsecureSkipVerify bool
	SendQueueSize      int
}

// Gateway upgrades HTTP requests to websocket sessions joined to a Hub.
type Gateway struct {
	hub  *Hub
	opts GatewayOptions
}

func NewGateway(h *Hub, opts GatewayOptions) *Gateway {
	return &Gateway{hub: h, opts: opts}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:     g.opts.OriginPatterns,
		InsecureSkipVerify: g.opts.InsecureSkipVerify,
	})
	if err != nil {
		g.hub.log.Warn(r.Context(), "ws accept failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

	conn.SetReadLimit(maxFrameBytes)

	sessionID, err := common.MakeRandHexString(sessionIDLength)
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "session id")
		return
	}
	client := NewClient(sessionID, g.opts.SendQueueSize)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var closeOnce sync.Once
	shutdown := func(code websocket.StatusCode, reason string) {
		closeOnce.Do(func() {
			g.hub.Leave(sessionID)
			client.Close()
			_ = conn.Close(code, reason)
			cancel()
		})
	}

	g.hub.Join(client)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		g.writeLoop(ctx, conn, client, shutdown)
	}()

	go g.pingLoop(ctx, conn, client, shutdown)

	// Desks don't send anything meaningful; reading keeps control frames
	// flowing and notices the peer going away.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			switch {
			case websocket.CloseStatus(err) != -1:
				shutdown(websocket.StatusNormalClosure, "peer closed")
			case errors.Is(err, context.Canceled):
				shutdown(websocket.StatusGoingAway, "context done")
			default:
				g.hub.log.Debug(ctx, "ws read failed", "session_id", sessionID, "error", err)
				shutdown(websocket.StatusAbnormalClosure, "read failed")
			}
			break
		}
	}

	<-writerDone
}

func (g *Gateway) writeLoop(ctx context.Context, conn *websocket.Conn, client *Client, shutdown func(websocket.StatusCode, string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-client.Done():
			return
		case frame := <-client.Send:
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, frame)
			wcancel()
			if err != nil {
				g.hub.log.Info(ctx, "ws write failed", "session_id", client.SessionID, "error", err)
				shutdown(websocket.StatusAbnormalClosure, "write failed")
				return
			}
		}
	}
}

func (g *Gateway) pingLoop(ctx context.Context, conn *websocket.Conn, client *Client, shutdown func(websocket.StatusCode, string)) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-client.Done():
			return
		case <-t.C:
			pctx, pcancel := context.WithTimeout(ctx, pingTimeout)
			err := conn.Ping(pctx)
			pcancel()
			if err != nil {
				shutdown(websocket.StatusGoingAway, "heartbeat failed")
				return
			}
		}
	}
}
