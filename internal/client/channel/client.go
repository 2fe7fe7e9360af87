// Package channel implements the desk client's realtime channel: one
// long-lived websocket connection that delivers server events to
// subscribers and reconnects at a fixed interval whenever it drops.
//
// The connection lifecycle is an explicit state machine
// (Disconnected, Connecting, Connected) run by a single supervisor
// goroutine per Client. Disconnect cancels the supervisor, which closes the
// live connection and abandons any pending reconnect.
package channel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/metrics"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

// DefaultReconnectInterval is the delay between a close and the next dial.
const DefaultReconnectInterval = 3 * time.Second

var ErrNotConnected = errors.New("channel is not connected")

type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Conn is one open channel connection. Read blocks until a frame arrives,
// the connection fails, or ctx is done.
type Conn interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, frame []byte) error
	Close() error
}

// Dialer opens a connection to url.
type Dialer func(ctx context.Context, url string) (Conn, error)

type Config struct {
	URL               string
	ReconnectInterval time.Duration
	Dialer            Dialer
	Logger            logging.Logger
	Metrics           *metrics.Client

	// OnState, when set, observes every state transition. It runs on the
	// supervisor goroutine and must not block.
	OnState func(State)
}

type Client struct {
	url      string
	interval time.Duration
	dial     Dialer
	log      logging.Logger
	metrics  *metrics.Client
	onState  func(State)

	reg registry

	mu     sync.Mutex
	state  State
	conn   Conn
	cancel context.CancelFunc
	done   chan struct{}
}

func New(cfg Config) *Client {
	c := &Client{
		url:      cfg.URL,
		interval: cfg.ReconnectInterval,
		dial:     cfg.Dialer,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
		onState:  cfg.OnState,
	}
	if c.interval <= 0 {
		c.interval = DefaultReconnectInterval
	}
	if c.dial == nil {
		c.dial = WebSocketDialer(nil)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	c.log = c.log.With("component", "channel")
	return c
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers h for messages of type t. Handlers for the same type
// run in registration order. The returned function removes the
// subscription and is safe to call more than once.
func (c *Client) Subscribe(t MessageType, h Handler) func() {
	return c.reg.add(t, h)
}

// On subscribes a handler typed to one event variant, such as
// PatientCreatedEvent. Use Subscribe for types that arrive as RawEvent.
func On[E Event](c *Client, h func(ctx context.Context, ev E) error) func() {
	var zero E
	return c.Subscribe(zero.Type(), func(ctx context.Context, ev Event) error {
		typed, ok := ev.(E)
		if !ok {
			return nil
		}
		return h(ctx, typed)
	})
}

// Connect starts the supervisor. It returns immediately, and is a no-op
// while a supervisor is already running. The supervisor stops when ctx is
// done or Disconnect is called.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go c.supervise(runCtx, done)
}

// Disconnect stops the supervisor and waits for it to exit. A pending
// reconnect never fires afterwards.
func (c *Client) Disconnect() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Send writes a {type, data} frame on the live connection.
func (c *Client) Send(ctx context.Context, t MessageType, data any) error {
	c.mu.Lock()
	conn, state := c.conn, c.state
	c.mu.Unlock()

	if state != Connected || conn == nil {
		return ErrNotConnected
	}

	frame, err := Encode(t, data)
	if err != nil {
		return err
	}
	return conn.Write(ctx, frame)
}

func (c *Client) supervise(ctx context.Context, done chan struct{}) {
	defer func() {
		c.mu.Lock()
		if c.done == done {
			c.cancel = nil
		}
		c.mu.Unlock()
		close(done)
	}()

	first := true
	for {
		if !first {
			c.metrics.Reconnect()
			timer := time.NewTimer(c.interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		first = false

		c.setState(Connecting, nil)
		c.metrics.Dial()

		conn, err := c.dial(ctx, c.url)
		if err != nil {
			c.setState(Disconnected, nil)
			if ctx.Err() != nil {
				return
			}
			c.log.Warn(ctx, "channel dial failed", "url", c.url, "error", err, "retry_in", c.interval)
			continue
		}

		c.setState(Connected, conn)
		c.log.Info(ctx, "channel connected", "url", c.url)

		c.readLoop(ctx, conn)

		_ = conn.Close()
		c.setState(Disconnected, nil)

		if ctx.Err() != nil {
			return
		}
		c.log.Info(ctx, "channel closed, reconnecting", "retry_in", c.interval)
	}
}

func (c *Client) readLoop(ctx context.Context, conn Conn) {
	for {
		frame, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				c.log.Debug(ctx, "channel read ended", "error", err)
			}
			return
		}

		ev, err := Decode(frame)
		if err != nil {
			c.metrics.ParseError()
			c.log.Warn(ctx, "dropping channel frame", "error", err)
			continue
		}

		t := string(ev.Type())
		c.metrics.Frame(t)
		c.reg.dispatch(ctx, ev, func(err error) {
			c.metrics.HandlerFailure(t)
			c.log.Error(ctx, "channel handler failed", "type", t, "error", err)
		})
	}
}

func (c *Client) setState(s State, conn Conn) {
	c.mu.Lock()
	c.state = s
	c.conn = conn
	c.mu.Unlock()

	c.metrics.SetChannelState(int(s))
	if c.onState != nil {
		c.onState(s)
	}
}
