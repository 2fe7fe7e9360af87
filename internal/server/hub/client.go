package hub

import "sync"

// Client is one connected desk. Send is never closed so concurrent
// broadcasters can't panic. Close only signals done.
type Client struct {
	SessionID string
	Send      chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(sessionID string, sendQueueSize int) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = DefaultSendQueueSize
	}
	return &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, sendQueueSize),
		done:      make(chan struct{}),
	}
}

// Done is closed once the client is shutting down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close is idempotent.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
