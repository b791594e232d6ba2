// Package api serves the beneficiary search over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sii-nl/buscador/internal/core/search"
	"github.com/sii-nl/buscador/internal/shell/metrics"
)

// Query parameter names.
const (
	ParamMethod   = "metodo"
	ParamValue    = "valor"
	ParamValue2   = "valor2"
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// =============================================================================
// Response Mode
// =============================================================================

// ResponseMode selects the shape of a successful search response.
type ResponseMode string

const (
	// ModeList returns the whole page with pagination totals.
	ModeList ResponseMode = "list"
	// ModeSingle returns only the first record of the page, and a bare []
	// for an empty page. Older clients depend on it.
	ModeSingle ResponseMode = "single"
)

// ParseResponseMode validates a configured mode. "" selects ModeList.
func ParseResponseMode(s string) (ResponseMode, error) {
	switch ResponseMode(s) {
	case "", ModeList:
		return ModeList, nil
	case ModeSingle:
		return ModeSingle, nil
	default:
		return "", fmt.Errorf("unknown response mode %q", s)
	}
}

// =============================================================================
// Handler
// =============================================================================

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Service         *search.Service
	Messages        search.Messages
	Mode            ResponseMode
	DefaultPageSize int
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

// Handler serves the search endpoint.
type Handler struct {
	service         *search.Service
	messages        search.Messages
	mode            ResponseMode
	defaultPageSize int
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewHandler creates a search handler. Empty fields take their defaults:
// Spanish messages, list mode and a page size of search.DefaultPageSize.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Service == nil {
		cfg.Service = search.NewService(nil, search.DefaultOptions())
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeList
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = search.DefaultPageSize
	}
	return &Handler{
		service:         cfg.Service,
		messages:        cfg.Messages.Merge(search.SpanishMessages()),
		mode:            cfg.Mode,
		defaultPageSize: cfg.DefaultPageSize,
		metrics:         cfg.Metrics,
		logger:          cfg.Logger,
	}
}

// Routes returns the router for the search endpoint.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	r.Get("/buscar", h.handleSearch)
	r.Get("/buscar/", h.handleSearch)

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Search
// =============================================================================

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := r.URL.Query()
	label := methodLabel(params.Get(ParamMethod))
	logger := h.logger.With("request_id", middleware.GetReqID(r.Context()), "metodo", label)
	logger.Info("search request received")

	var res search.Result
	q, err := h.parseQuery(params)
	if err == nil {
		res, err = h.service.Search(q)
	}
	h.metrics.ObserveLatency(label, time.Since(start))
	if err == nil {
		h.writeResult(w, logger, label, res)
		return
	}

	var sErr *search.Error
	if !errors.As(err, &sErr) {
		logger.Error("search failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: http.StatusText(http.StatusInternalServerError)})
		return
	}

	switch sErr.Kind {
	case search.KindNotFound:
		h.metrics.IncrementSearch(label, metrics.OutcomeNotFound)
		logger.Warn("no records found")
	case search.KindInvalidIdentifier:
		h.metrics.IncrementSearch(label, metrics.OutcomeRejected)
		logger.Warn("search rejected", "reason", sErr.Kind.String())
		logger.Debug("rejected identifier", "valor", params.Get(ParamValue))
	default:
		h.metrics.IncrementSearch(label, metrics.OutcomeRejected)
		logger.Warn("search rejected", "reason", sErr.Kind.String())
	}

	h.writeJSON(w, sErr.StatusCode(), ErrorResponse{Detail: h.messages.Format(sErr)})
}

// parseQuery maps request parameters to a query. A value parameter that
// is present but empty is passed on as an empty value.
func (h *Handler) parseQuery(params url.Values) (search.Query, error) {
	q := search.Query{
		Method:   params.Get(ParamMethod),
		Page:     search.DefaultPage,
		PageSize: h.defaultPageSize,
	}
	if params.Has(ParamValue) {
		v := params.Get(ParamValue)
		q.Value = &v
	}
	if params.Has(ParamValue2) {
		v := params.Get(ParamValue2)
		q.Value2 = &v
	}

	var err error
	if q.Page, err = intParam(params, ParamPage, q.Page); err != nil {
		return search.Query{}, err
	}
	if q.PageSize, err = intParam(params, ParamPageSize, q.PageSize); err != nil {
		return search.Query{}, err
	}
	return q, nil
}

func (h *Handler) writeResult(w http.ResponseWriter, logger *slog.Logger, label string, res search.Result) {
	outcome := metrics.OutcomeSuccess
	if res.Empty() {
		outcome = metrics.OutcomeEmpty
	}
	h.metrics.IncrementSearch(label, outcome)
	h.metrics.ObserveResults(label, len(res.Records))

	logger.Info("search completed",
		"total", res.Total,
		"returned", len(res.Records),
		"page", res.Page,
		"page_size", res.PageSize,
	)

	if h.mode == ModeSingle {
		if res.Empty() {
			h.writeJSON(w, http.StatusOK, []any{})
			return
		}
		h.writeJSON(w, http.StatusOK, SearchResponse{
			Status:     StatusSuccess,
			Data:       res.Records[0],
			Mensaje:    h.messages.Success,
			StatusCode: http.StatusOK,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, SearchResponse{
		Status:     StatusSuccess,
		Data:       res.Records,
		Mensaje:    h.messages.Success,
		StatusCode: http.StatusOK,
		Total:      &res.Total,
		Page:       &res.Page,
		PageSize:   &res.PageSize,
	})
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

// intParam reads an integer parameter, returning def when it is absent.
func intParam(params url.Values, name string, def int) (int, error) {
	if !params.Has(name) {
		return def, nil
	}
	n, err := strconv.Atoi(params.Get(name))
	if err != nil {
		return 0, search.ErrInvalidPagination
	}
	return n, nil
}

// methodLabel bounds the metric and log label to the known methods.
func methodLabel(raw string) string {
	m, ok := search.ParseMethod(raw)
	if !ok {
		return "invalid"
	}
	return m.String()
}
