package mfapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	"github.com/SscSPs/mf_receipt_desk/internal/metrics"
	"github.com/SscSPs/mf_receipt_desk/internal/middleware"
)

const maxBodyBytes = 8 << 20

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout bounds every call except the auth ones. Zero leaves it to the transport.
	Timeout time.Duration
	// AuthTimeout bounds Login and IsAuthenticated.
	AuthTimeout time.Duration
	HTTPClient  *http.Client
}

// Client talks to the MF backend REST API.
type Client struct {
	baseURL     string
	timeout     time.Duration
	authTimeout time.Duration
	http        *http.Client
}

// NewClient creates a Client. A nil HTTPClient gets a default one.
func NewClient(opts Options) *Client {
	cli := opts.HTTPClient
	if cli == nil {
		cli = &http.Client{}
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		timeout:     opts.Timeout,
		authTimeout: opts.AuthTimeout,
		http:        cli,
	}
}

// Ensure implementation matches interface
var _ gateways.MFBackend = (*Client)(nil)

// call describes one request. endpoint is the metrics and error label.
type call struct {
	endpoint string
	method   string
	path     string
	payload  any
	timeout  time.Duration
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// roundTrip performs the request and maps transport failures. It does not
// judge the status code; see do for that.
func (c *Client) roundTrip(ctx context.Context, cl call) (*response, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("endpoint", cl.endpoint))

	if cl.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cl.timeout)
		defer cancel()
	}

	var body io.Reader
	if cl.payload != nil {
		raw, err := json.Marshal(cl.payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", cl.endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", cl.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie, ok := gateways.SessionCookieFromContext(ctx); ok {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(cl.endpoint, "error").Observe(time.Since(start).Seconds())
		logger.Warn("MF backend request failed", slog.String("error", err.Error()))
		return nil, transportError(cl.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.UpstreamRequestDuration.WithLabelValues(cl.endpoint, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Warn("Failed to read MF backend response", slog.String("error", err.Error()))
		return nil, transportError(cl.endpoint, err)
	}

	logger.Debug("MF backend responded", slog.Int("status", resp.StatusCode), slog.Duration("elapsed", time.Since(start)))
	return &response{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

// do performs the request and turns non-2xx answers into ServerError.
func (c *Client) do(ctx context.Context, cl call) (*response, error) {
	resp, err := c.roundTrip(ctx, cl)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &apperrors.ServerError{
			Endpoint: cl.endpoint,
			Status:   resp.status,
			Body:     string(resp.body),
		}
	}
	return resp, nil
}

func transportError(endpoint string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &apperrors.TimeoutError{Endpoint: endpoint, Err: err}
	}
	return &apperrors.NetworkError{Endpoint: endpoint, Err: err}
}

// emptyBody is sent where the backend expects a JSON object but no fields.
var emptyBody = struct{}{}
