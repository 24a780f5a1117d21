// Package gateway is the HTTP client for the remote declaration API. Every
// collaborator the wizard, registration flow, reference data cache and
// notification relay depend on is a method on Client.
package gateway

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
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"travelgate/pkg/requestcontext"
)

const (
	headerAPIKey    = "X-API-Key"
	headerCallerID  = "X-Caller-ID"
	headerRequestID = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

// Client calls the remote API. It never retries; failures are classified and
// returned for the caller to surface.
type Client struct {
	baseURL  *url.URL
	apiKey   string
	callerID string
	http     *http.Client
	tracer   trace.Tracer
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithMetrics records call latency.
func WithMetrics(m *Metrics) Option {
	return func(cl *Client) { cl.metrics = m }
}

// WithLogger sets the logger for failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// New builds a client for baseURL.
func New(baseURL, apiKey, callerID string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse remote API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote API URL must be http or https, got %q", baseURL)
	}
	c := &Client{
		baseURL:  u,
		apiKey:   apiKey,
		callerID: callerID,
		http:     &http.Client{Timeout: timeout},
		tracer:   otel.Tracer("travelgate/gateway"),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CallerID is the fixed identifier sent with initialization.
func (c *Client) CallerID() string {
	return c.callerID
}

// envelope is the API's response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// call performs one request and decodes envelope.data into out (if non-nil).
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body, out any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "gateway."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("travelgate.operation", op),
		),
	)
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(GetCategory(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
			c.logger.WarnContext(ctx, "remote call failed",
				"operation", op,
				"category", outcome,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		c.metrics.ObserveCall(op, outcome, time.Since(start))
		span.End()
	}()

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, mErr := json.Marshal(body)
		if mErr != nil {
			return NewAPIError(ErrorInternal, op, "encode request", mErr)
		}
		reader = bytes.NewReader(raw)
	}

	req, rErr := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if rErr != nil {
		return NewAPIError(ErrorInternal, op, "build request", rErr)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	req.Header.Set(headerCallerID, c.callerID)
	if reqID := requestcontext.RequestID(ctx); reqID != "" {
		req.Header.Set(headerRequestID, reqID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, dErr := c.http.Do(req)
	if dErr != nil {
		return classifyTransport(op, dErr)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, rdErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if rdErr != nil {
		return classifyTransport(op, rdErr)
	}
	return decodeResponse(op, resp.StatusCode, raw, out)
}

func classifyTransport(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewAPIError(ErrorTimeout, op, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewAPIError(ErrorTimeout, op, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewAPIError(ErrorInternal, op, "request cancelled", err)
	}
	return NewAPIError(ErrorUnavailable, op, "remote API unreachable", err)
}

// decodeResponse maps status code and envelope to a result or APIError.
func decodeResponse(op string, status int, raw []byte, out any) error {
	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewAPIError(ErrorAuthentication, op, "remote API refused credentials", nil)
	case status == http.StatusNotFound:
		return NewAPIError(ErrorNotFound, op, messageOr(env.Message, "record not found"), nil)
	case status == http.StatusTooManyRequests:
		return NewAPIError(ErrorRateLimited, op, "remote API rate limit reached", nil)
	case status >= http.StatusInternalServerError:
		return NewAPIError(ErrorUnavailable, op, fmt.Sprintf("remote API returned %d", status), nil)
	case status >= http.StatusBadRequest:
		if parseErr == nil && env.Message != "" {
			return NewAPIError(ErrorRejected, op, env.Message, nil)
		}
		return NewAPIError(ErrorRejected, op, fmt.Sprintf("remote API returned %d", status), nil)
	}

	if parseErr != nil {
		return NewAPIError(ErrorBadData, op, "malformed response", parseErr)
	}
	if strings.EqualFold(env.Status, "error") {
		return NewAPIError(ErrorRejected, op, messageOr(env.Message, "request was rejected"), nil)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return NewAPIError(ErrorBadData, op, "malformed response data", err)
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
