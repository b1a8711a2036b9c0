package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/health"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
)

// maxBodyBytes bounds request bodies; five inline images at a few megabytes
// each fit comfortably.
const maxBodyBytes = 32 << 20

// Orchestrator is the slice of the heritage orchestrator the transport needs.
type Orchestrator interface {
	FetchComposite(ctx context.Context, clientID, subject, language string) heritage.CompositeResult
	FetchImage(ctx context.Context, clientID, subject, descriptiveContext string) heritage.ImageResult
	AnalyzeImages(ctx context.Context, clientID string, images [][]byte, language string) heritage.AnalysisResult
}

// Handler serves the heritage HTTP API.
type Handler struct {
	orch   Orchestrator
	logger *slog.Logger
	probes []health.Probe
}

// HandlerOption configures the API handler.
type HandlerOption func(*Handler)

// WithReadinessProbes registers dependency checks behind GET /readyz.
func WithReadinessProbes(probes ...health.Probe) HandlerOption {
	return func(h *Handler) {
		h.probes = append(h.probes, probes...)
	}
}

// NewHandler creates the API handler.
func NewHandler(orch Orchestrator, logger *slog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{orch: orch, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router assembles the chi router with the standard middleware stack.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(ClientIP)
	r.Use(Logging(h.logger))

	r.Route("/api/v1/heritage", func(r chi.Router) {
		r.Post("/composite", h.composite)
		r.Post("/image", h.image)
		r.Post("/analyze", h.analyze)
	})
	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(h.logger, h.probes...))

	return r
}

type compositeRequest struct {
	Subject  string `json:"subject"`
	Language string `json:"language"`
}

func (h *Handler) composite(w http.ResponseWriter, r *http.Request) {
	var req compositeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Subject == "" {
		writeBadRequest(w, "subject is required")
		return
	}

	result := h.orch.FetchComposite(r.Context(), GetClientIP(r.Context()), req.Subject, req.Language)
	writeJSON(w, statusCode(result.Status), result)
}

type imageRequest struct {
	Subject string `json:"subject"`
	Context string `json:"context"`
}

func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Subject == "" {
		writeBadRequest(w, "subject is required")
		return
	}

	result := h.orch.FetchImage(r.Context(), GetClientIP(r.Context()), req.Subject, req.Context)
	writeJSON(w, statusCode(result.Status), result)
}

type analyzeRequest struct {
	Images   []string `json:"images"` // base64-encoded payloads
	Language string   `json:"language"`
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Images) == 0 {
		writeBadRequest(w, "at least one image is required")
		return
	}

	images := make([][]byte, 0, len(req.Images))
	for _, encoded := range req.Images {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			writeBadRequest(w, "images must be base64 encoded")
			return
		}
		images = append(images, raw)
	}

	result := h.orch.AnalyzeImages(r.Context(), GetClientIP(r.Context()), images, req.Language)
	writeJSON(w, statusCode(result.Status), result)
}

// decode reads a JSON body, reporting a 400 on malformed input.
func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()

	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return false
	}
	return true
}
