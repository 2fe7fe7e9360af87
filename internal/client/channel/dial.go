package channel

import (
	"context"

	"github.com/coder/websocket"
)

const maxFrameBytes = 1 << 20

type wsConn struct {
	c *websocket.Conn
}

func (w wsConn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := w.c.Read(ctx)
	return data, err
}

func (w wsConn) Write(ctx context.Context, frame []byte) error {
	return w.c.Write(ctx, websocket.MessageText, frame)
}

func (w wsConn) Close() error {
	return w.c.Close(websocket.StatusNormalClosure, "bye")
}

// WebSocketDialer dials ws:// and wss:// URLs. opts may be nil.
func WebSocketDialer(opts *websocket.DialOptions) Dialer {
	return func(ctx context.Context, url string) (Conn, error) {
		conn, _, err := websocket.Dial(ctx, url, opts)
		if err != nil {
			return nil, err
		}
		conn.SetReadLimit(maxFrameBytes)
		return wsConn{c: conn}, nil
	}
}
