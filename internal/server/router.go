// Package server exposes the generator as an HTTP API.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	POST /v1/generate   definition in, S7 source out
//	POST /v1/inspect    definition in, JSON summary out
//
// The definition format is taken from the ?format= query parameter or the
// Content-Type header (JSON when neither is set). Errors are returned as
// {"code": "...", "error": "..."}.
package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/s7db/internal/config"
	"github.com/matzehuels/s7db/pkg/buildinfo"
	"github.com/matzehuels/s7db/pkg/cache"
	"github.com/matzehuels/s7db/pkg/errors"
	pio "github.com/matzehuels/s7db/pkg/io"
	"github.com/matzehuels/s7db/pkg/observability"
	"github.com/matzehuels/s7db/pkg/pipeline"
)

// MaxBodySize limits definition uploads.
const MaxBodySize = 4 << 20

// Response headers.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderCache     = "X-S7db-Cache"
	HeaderHash      = "X-S7db-Hash"
)

type handlers struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults config.DefaultsConfig
}

// Option configures the router.
type Option func(*handlers)

// WithDefaults sets the block attributes applied to definitions that leave
// them unset, matching the CLI.
func WithDefaults(d config.DefaultsConfig) Option {
	return func(h *handlers) { h.defaults = d }
}

// NewRouter creates the API router. A nil logger discards request logs.
func NewRouter(runner *pipeline.Runner, logger *log.Logger, opts ...Option) chi.Router {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	h := &handlers{runner: runner, logger: logger}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", h.handleGenerate)
		r.Post("/inspect", h.handleInspect)
	})
	return r
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (h *handlers) handleGenerate(w http.ResponseWriter, r *http.Request) {
	doc, err := h.decodeDefinition(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.runner.Generate(r.Context(), pipeline.Options{
		Document: doc,
		Logger:   requestLogger(r.Context(), h.logger),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": res.Block.DefaultFilename(),
	}))
	w.Header().Set(HeaderCache, cacheStatus)
	w.Header().Set(HeaderHash, res.Hash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Source))
}

// InspectResponse is the body of POST /v1/inspect.
type InspectResponse struct {
	*pio.Summary
	Hash       string `json:"hash"`
	Renderable bool   `json:"renderable"`
}

func (h *handlers) handleInspect(w http.ResponseWriter, r *http.Request) {
	doc, err := h.decodeDefinition(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	b, err := doc.Build()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var def bytes.Buffer
	if err := pio.WriteJSON(b, &def); err != nil {
		h.writeError(w, r, err)
		return
	}
	summary := pio.Summarize(b)
	writeJSON(w, http.StatusOK, InspectResponse{
		Summary:    summary,
		Hash:       cache.Hash(def.Bytes()),
		Renderable: summary.Renderable(),
	})
}

// decodeDefinition reads the request body as a definition document and
// applies the configured defaults.
func (h *handlers) decodeDefinition(w http.ResponseWriter, r *http.Request) (*pio.Document, error) {
	format, err := requestFormat(r)
	if err != nil {
		return nil, err
	}
	body := http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer body.Close()
	doc, err := pio.Decode(body, format)
	if err != nil {
		return nil, err
	}
	doc.ApplyDefaults(h.defaults.OptimizedAccess, h.defaults.OPCAccess)
	return doc, nil
}

// requestFormat picks the definition format from ?format= or Content-Type.
func requestFormat(r *http.Request) (pio.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return pio.ParseFormat(f)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return pio.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid Content-Type %q", ct)
	}
	switch mediaType {
	case "application/json", "text/json":
		return pio.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return pio.FormatYAML, nil
	case "application/toml", "text/toml":
		return pio.FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported Content-Type %q", mediaType)
	}
}

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidName, errors.ErrCodeInvalidValue,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeJaggedArray,
		errors.ErrCodeUnsupportedType:
		return http.StatusBadRequest
	case errors.ErrCodeUnimplemented:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Code:  errors.ErrCodeInvalidInput,
			Error: fmt.Sprintf("definition exceeds %d bytes", tooLarge.Limit),
		})
		return
	}

	status := statusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		requestLogger(r.Context(), h.logger).Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// accessLog logs each request and reports it to the HTTP hooks.
func (h *handlers) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, duration)
		requestLogger(r.Context(), h.logger).Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}
