package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bincheck/internal/bin"
	"bincheck/internal/binlist"
	"bincheck/internal/binstub"
	"bincheck/internal/config"
	"bincheck/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	server   *httptest.Server
	metrics  *metrics.Metrics
	stubHits *atomic.Int32
}

// newTestEnv wires router -> binlist client -> binstub, all in-process.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	store, err := binstub.LoadStore(filepath.Join("..", "binstub", "testdata", "fixtures.json"))
	require.NoError(t, err)
	engine := binstub.NewEngine(store, logger)

	hits := &atomic.Int32{}
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(stub.Close)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	client := binlist.New(
		config.LookupConfig{BaseURL: stub.URL, Timeout: 5 * time.Second},
		binlist.WithLogger(logger),
		binlist.WithMetrics(m),
	)

	srv := httptest.NewServer(NewRouter(NewHandler(client, logger, m), logger, reg))
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, metrics: m, stubHits: hits}
}

func (e *testEnv) post(t *testing.T, value string) (int, string) {
	t.Helper()
	resp, err := http.PostForm(e.server.URL+"/", url.Values{"bin": {value}})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (e *testEnv) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestForm_Idle(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "BIN Checker Pro")
	assert.Contains(t, body, "Verify BIN")
	assert.NotContains(t, body, `role="alert"`)
	assert.NotContains(t, body, "Card Information")
}

func TestSubmit_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "12a3")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, `value="123"`)
	assert.Contains(t, body, bin.ValidationMessage)
	assert.Equal(t, int32(0), env.stubHits.Load(), "no request for a short input")
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Validation))
}

func TestSubmit_Success(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "4571 7360")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="45717360"`)
	for _, want := range []string{
		"Card Information",
		"Jyske Bank",
		`href="tel:`,
		`href="https://www.jyskebank.dk"`,
		"Denmark",
		"16 digits",
		`class="valid"`,
	} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, `role="alert"`)
	assert.Equal(t, int32(1), env.stubHits.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Lookups.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestSubmit_EmptyFieldsRenderDash(t *testing.T) {
	env := newTestEnv(t)

	// the 601120 fixture has no category
	status, body := env.post(t, "601120")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<dt>Category</dt><dd>—</dd>")
	assert.Contains(t, body, `href="https://discover.com"`)
}

func TestSubmit_LookupFailure(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "999999")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, bin.FailureMessage)
	assert.Contains(t, body, `value="999999"`)
	assert.NotContains(t, body, "Card Information")
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Lookups.WithLabelValues(metrics.OutcomeStatus)))
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "123")

	status, body := env.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "bincheck_validation_rejections_total 1")
}

type panicLookuper struct{}

func (panicLookuper) Lookup(context.Context, string) (*bin.Result, error) {
	panic("boom")
}

func TestSubmit_PanickingLookuperRendersFailure(t *testing.T) {
	logger := zaptest.NewLogger(t)
	h := NewRouter(NewHandler(panicLookuper{}, logger, nil), logger, nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("bin=457173"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), bin.FailureMessage)
}

func TestNoMetricsRouteWithoutGatherer(t *testing.T) {
	h := NewRouter(NewHandler(panicLookuper{}, nil, nil), nil, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
