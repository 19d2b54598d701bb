// Package binlist is the HTTP client for the external BIN lookup service
// (binlist.io and compatible services such as binstub).
package binlist

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bincheck/internal/bin"
	"bincheck/internal/config"
	"bincheck/internal/jsonutil"
	"bincheck/internal/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a non-2xx body is kept on Error.
const maxErrorBody = 512

var errNullRecord = errors.New("response body is JSON null")

// Client issues GET {baseURL}/lookup/{digits}.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	tracer  oteltrace.Tracer
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests use httptest clients).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for cfg.BaseURL with cfg.Timeout applied per request.
func New(cfg config.LookupConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  zap.NewNop(),
		tracer:  noop.NewTracerProvider().Tracer("bincheck/binlist"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the record for digits. It sends exactly one request and
// never retries. Every failure is an *Error.
func (c *Client) Lookup(ctx context.Context, digits string) (*bin.Result, error) {
	id := uuid.NewString()
	log := c.logger.With(zap.String("lookup_id", id), zap.Int("digits_len", len(digits)))

	ctx, span := c.tracer.Start(ctx, "binlist.lookup", oteltrace.WithAttributes(
		attribute.String("bincheck.lookup_id", id),
		attribute.Int("bin.digits_len", len(digits)),
	))
	defer span.End()

	start := c.now()
	result, err := c.do(ctx, digits)
	elapsed := c.now().Sub(start)

	if err != nil {
		var lerr *Error
		if errors.As(err, &lerr) {
			c.metrics.ObserveLookup(lerr.Kind.outcome(), elapsed)
			span.SetAttributes(attribute.String("bincheck.outcome", lerr.Kind.outcome()))
			if lerr.StatusCode != 0 {
				span.SetAttributes(attribute.Int("http.status_code", lerr.StatusCode))
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		log.Warn("bin lookup failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, err
	}

	c.metrics.ObserveLookup(metrics.OutcomeSuccess, elapsed)
	span.SetAttributes(
		attribute.String("bincheck.outcome", metrics.OutcomeSuccess),
		attribute.Int("http.status_code", http.StatusOK),
	)
	log.Debug("bin lookup succeeded", zap.String("scheme", result.Scheme), zap.Duration("elapsed", elapsed))
	return result, nil
}

func (c *Client) do(ctx context.Context, digits string) (*bin.Result, error) {
	endpoint := c.baseURL + "/lookup/" + url.PathEscape(digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Digits: digits, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Digits: digits, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Kind:       KindStatus,
			Digits:     digits,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	result, err := jsonutil.Decode[*bin.Result](resp.Body, "decode lookup response")
	if err != nil {
		return nil, &Error{Kind: KindDecode, Digits: digits, Err: err}
	}
	if result == nil {
		return nil, &Error{Kind: KindDecode, Digits: digits, Err: errNullRecord}
	}
	return result, nil
}
