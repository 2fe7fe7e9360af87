package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/clinicdesk/internal/client/metrics"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

// Session is the part of the session state the pipeline needs.
type Session interface {
	Token() (string, bool)
	Clear(ctx context.Context) error
}

// Refresher obtains a new credential after an expiry. It reports whether a
// new credential is now installed in the session.
type Refresher interface {
	Refresh(ctx context.Context) bool
}

// Request is an API call relative to the base URL. It is rebuilt into a new
// *http.Request for every send, so a replay sees the same method, body and
// caller headers as the original.
type Request struct {
	Method string
	Path   string
	Body   []byte
	Header http.Header

	// Anonymous requests never carry the credential and never trigger a
	// refresh.
	Anonymous bool
}

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	session   Session
	refresher Refresher
	log       logging.Logger
	metrics   *metrics.Client
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithMetrics(m *metrics.Client) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func WithRefresher(r Refresher) Option {
	return func(c *HTTPClient) { c.refresher = r }
}

func NewHTTPClient(baseURL string, session Session, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: session,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetRefresher installs the refresher. It must be called before the client
// is used from more than one goroutine.
func (c *HTTPClient) SetRefresher(r Refresher) {
	c.refresher = r
}

// Execute marshals body (when not nil) as JSON and runs the call through Do.
func (c *HTTPClient) Execute(ctx context.Context, method, endpoint string, body any, header http.Header) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}
	return c.Do(ctx, Request{Method: method, Path: endpoint, Body: payload, Header: header})
}

// Do sends req. A 401 for a request that carried a credential triggers one
// refresh; if it succeeds the request is replayed once with the new
// credential and that response is final, otherwise the session is cleared
// and ErrSessionExpired is returned.
func (c *HTTPClient) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	var token string
	var hadToken bool
	if !req.Anonymous {
		token, hadToken = c.session.Token()
	}

	status, body, err := c.send(ctx, req, token)
	if err != nil {
		c.metrics.Request(req.Method, "transport_error")
		return nil, err
	}

	if status == http.StatusUnauthorized && hadToken {
		c.log.Debug(ctx, "credential rejected, refreshing", "method", req.Method, "path", req.Path)

		if c.refresher == nil || !c.refresher.Refresh(ctx) {
			if err := c.session.Clear(ctx); err != nil {
				c.log.Warn(ctx, "failed to clear session", "error", err)
			}
			c.metrics.SessionExpired()
			c.metrics.Request(req.Method, "session_expired")
			return nil, ErrSessionExpired
		}

		token, _ = c.session.Token()
		c.metrics.Replay()
		status, body, err = c.send(ctx, req, token)
		if err != nil {
			c.metrics.Request(req.Method, "transport_error")
			return nil, err
		}
	}

	return c.result(req.Method, status, body)
}

func (c *HTTPClient) send(ctx context.Context, req Request, token string) (int, []byte, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return 0, nil, &RequestError{Message: common.MessageFallback, Err: err}
	}

	hr.Header.Set("Content-Type", "application/json")
	if token != "" {
		hr.Header.Set("Authorization", "Bearer "+token)
	}
	for k, vs := range req.Header {
		hr.Header.Del(k)
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return 0, nil, &RequestError{Message: common.MessageFallback, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &RequestError{Message: common.MessageFallback, Err: err}
	}
	return resp.StatusCode, data, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *HTTPClient) result(method string, status int, body []byte) (json.RawMessage, error) {
	if status < 200 || status > 299 {
		c.metrics.Request(method, "error")
		msg := common.MessageFallback
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		return nil, &RequestError{Status: status, Message: msg}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		c.metrics.Request(method, "ok")
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(trimmed) {
		c.metrics.Request(method, "error")
		return nil, &RequestError{Status: status, Message: common.MessageFallback, Err: fmt.Errorf("invalid JSON response")}
	}

	c.metrics.Request(method, "ok")
	return json.RawMessage(trimmed), nil
}

// Decode unmarshals a pipeline result into T.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}
