// Package web serves the BIN lookup form over HTTP. Each request owns its
// own lookup.State; there is no state shared between requests.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"bincheck/internal/bin"
	"bincheck/internal/lookup"
	"bincheck/internal/metrics"
	"bincheck/internal/ui/textutil"

	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{
			"dash": textutil.OrDash,
			// html/template only trusts http(s) and mailto in href.
			"telURL": func(b bin.Bank) template.URL { return template.URL(b.PhoneHref()) },
		}).
		ParseFS(templateFS, "templates/index.html"),
)

// maxFormBytes bounds the POST body; the form has a single short field.
const maxFormBytes = 4 << 10

// Handler wires the form endpoints to a lookup.Lookuper.
type Handler struct {
	lookuper lookup.Lookuper
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewHandler constructs a Handler. logger and m may be nil.
func NewHandler(l lookup.Lookuper, logger *zap.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{lookuper: l, logger: logger, metrics: m}
}

// pageData is the view of a lookup.State handed to the template.
type pageData struct {
	Input   string
	Message string
	Result  *bin.Result
}

// Form handles GET /: an empty form in Idle.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, lookup.State{})
}

// Submit handles POST /: sanitize the "bin" field, validate, look it up and
// render the resulting state.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	s := lookup.UpdateInput(lookup.State{}, r.PostFormValue("bin"))
	s = lookup.Submit(r.Context(), s, h.lookuper, nil)

	status := http.StatusOK
	switch {
	case errors.Is(s.Cause, bin.ErrTooShort):
		h.metrics.IncValidation()
		status = http.StatusUnprocessableEntity
	case s.Phase == lookup.PhaseError:
		h.logger.Warn("lookup failed", zap.String("bin", s.Input), zap.Error(s.Cause))
		status = http.StatusBadGateway
	}
	h.render(w, r, status, s)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, s lookup.State) {
	data := pageData{Input: s.Input}
	switch s.Phase {
	case lookup.PhaseError:
		data.Message = s.Message
	case lookup.PhaseSuccess:
		data.Result = s.Result
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render page", zap.Error(err), zap.String("path", r.URL.Path))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
