package binlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bincheck/internal/bin"
	"bincheck/internal/config"
	"bincheck/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
)

const discoverBody = `{"number":{"iin":"601120","length":16,"luhn":true},"scheme":"discover","type":"credit","category":"classic","country":{"alpha2":"US","alpha3":"USA","name":"United States","emoji":"🇺🇸"},"bank":{"name":"Discover Bank","phone":"1-800-555-0100","url":"discover.com"},"success":true}`

func discoverResult() *bin.Result {
	return &bin.Result{
		Number:   bin.Number{IIN: "601120", Length: 16, Luhn: true},
		Scheme:   "discover",
		Type:     "credit",
		Category: "classic",
		Country:  bin.Country{Alpha2: "US", Alpha3: "USA", Name: "United States", Emoji: "🇺🇸"},
		Bank:     bin.Bank{Name: "Discover Bank", Phone: "1-800-555-0100", URL: "discover.com"},
		Success:  true,
	}
}

func newTestClient(t *testing.T, baseURL string) (*Client, *metrics.Metrics, *tracetest.SpanRecorder) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	c := New(config.LookupConfig{BaseURL: baseURL, Timeout: 2 * time.Second},
		WithLogger(zaptest.NewLogger(t)),
		WithMetrics(m),
		WithTracer(tp.Tracer("test")),
	)
	return c, m, rec
}

func TestLookup_Success(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/lookup/601120", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(discoverBody))
	}))
	defer srv.Close()

	c, m, rec := newTestClient(t, srv.URL+"/")
	got, err := c.Lookup(context.Background(), "601120")
	require.NoError(t, err)
	assert.Equal(t, discoverResult(), got)
	assert.Equal(t, int32(1), calls.Load(), "exactly one request")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.OutcomeSuccess)))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "binlist.lookup", spans[0].Name())
}

func TestLookup_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantKind   Kind
		wantStatus int
		outcome    string
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"success":false}`, http.StatusNotFound)
			},
			wantKind:   KindStatus,
			wantStatus: http.StatusNotFound,
			outcome:    metrics.OutcomeStatus,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantKind:   KindStatus,
			wantStatus: http.StatusTooManyRequests,
			outcome:    metrics.OutcomeStatus,
		},
		{
			name: "html body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
			wantKind: KindDecode,
			outcome:  metrics.OutcomeDecode,
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantKind: KindDecode,
			outcome:  metrics.OutcomeDecode,
		},
		{
			name: "json null",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("null"))
			},
			wantKind: KindDecode,
			outcome:  metrics.OutcomeDecode,
		},
		{
			name: "wrong shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"number":"not an object"}`))
			},
			wantKind: KindDecode,
			outcome:  metrics.OutcomeDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c, m, _ := newTestClient(t, srv.URL)
			got, err := c.Lookup(context.Background(), "601120")
			require.Error(t, err)
			assert.Nil(t, got)

			var lerr *Error
			require.True(t, errors.As(err, &lerr), "expected *Error, got %T", err)
			assert.Equal(t, tt.wantKind, lerr.Kind)
			assert.Equal(t, tt.wantStatus, lerr.StatusCode)
			assert.Equal(t, "601120", lerr.Digits)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(tt.outcome)))
		})
	}
}

func TestLookup_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing listens any more

	c, _, rec := newTestClient(t, url)
	_, err := c.Lookup(context.Background(), "411111")

	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, KindTransport, lerr.Kind)
	assert.NotNil(t, errors.Unwrap(err))
	require.Len(t, rec.Ended(), 1)
	assert.Equal(t, "Error", rec.Ended()[0].Status().Code.String())
}

func TestLookup_StatusBodyTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	c, _, _ := newTestClient(t, srv.URL)
	_, err := c.Lookup(context.Background(), "41111111")
	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Len(t, lerr.Body, maxErrorBody)
	assert.Equal(t, "lookup 41111111: unexpected status 502", lerr.Error())
}

func TestLookup_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, _, _ := newTestClient(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Lookup(ctx, "601120")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "status", KindStatus.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
