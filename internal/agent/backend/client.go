package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Trippy-actions/server/internal/agent/model"
	errx "github.com/Trippy-actions/server/internal/core/error"
	logx "github.com/Trippy-actions/server/pkg/logger"
)

const maxBodySize = 1 << 20

// errServerStatus marks a 5xx reply so the breaker counts it as a failure
// while the response itself is still handed back to the caller.
var errServerStatus = errors.New("backend returned server error")

// Response is a buffered backend reply.
type Response struct {
	Status int
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errx.WrapDecode(fmt.Errorf("status %d: %w", r.Status, err))
	}
	return nil
}

// Client is a thin JSON client for the travel backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds a client from cfg.
func NewClient(cfg model.BackendConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend url is empty")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", cfg.URL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logx.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("backend circuit breaker state changed")
		},
	})

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		breaker: breaker,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, query, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		payload = b
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		// Drain remainder for connection reuse.
		_, _ = io.Copy(io.Discard, resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}

		r := &Response{Status: resp.StatusCode, Body: data}
		if resp.StatusCode >= http.StatusInternalServerError {
			return r, errServerStatus
		}
		return r, nil
	})
	if errors.Is(err, errServerStatus) {
		err = nil
	}
	if err != nil {
		logx.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return nil, errx.WrapBackend(fmt.Errorf("%s %s: %w", method, path, err))
	}

	r := out.(*Response)
	logx.Debug().Str("method", method).Str("path", path).Int("status", r.Status).Msg("backend request")
	return r, nil
}

// expectOK turns a non-2xx reply into an error carrying its status.
func expectOK(method, path string, r *Response) error {
	if r.OK() {
		return nil
	}
	return errx.New(fmt.Errorf("%s %s returned %d: %s", method, path, r.Status, snippet(r.Body)), r.Status, errx.BackendErrorMessage)
}

func snippet(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
