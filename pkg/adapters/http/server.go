package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/api"
	"github.com/aretw0/weave/pkg/document"
	"github.com/aretw0/weave/pkg/domain"
	"github.com/aretw0/weave/pkg/instructions"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxDocumentBytes bounds the request body of planning endpoints.
const MaxDocumentBytes = 64 << 20

// Planner defines the planning core served over HTTP.
type Planner interface {
	Plan(ctx context.Context, req weave.Request) (*weave.Plan, error)
	Validate(data []byte) (*document.Document, error)
}

// Server holds the handlers for the weave HTTP API.
type Server struct {
	Planner  Planner
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the planner.
func NewHandler(planner Planner, opts ...Option) http.Handler {
	server := &Server{Planner: planner}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(server.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.Spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/validate", server.Validate)
	r.Post("/plan", server.CreatePlan)
	r.Post("/instructions", server.CreateInstructions)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestID returns the ID assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", RequestID(r.Context()),
		)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>weave API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if spec, err := api.Load(r.Context()); err == nil && spec.Info != nil {
		apiVersion = spec.Info.Version
	} else if err != nil {
		s.Logger.Error("Failed to load OpenAPI spec", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "weave-http",
		"version":     strings.TrimSpace(weave.Version),
		"api_version": apiVersion,
	})
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	doc, err := s.Planner.Validate(data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"pins":               doc.Board.PinCount(),
		"declared_pin_count": doc.DeclaredPinCount,
		"segments":           len(doc.Segments),
	})
}

// CreatePlan handles the POST /plan request.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.plan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// CreateInstructions handles the POST /instructions request.
func (s *Server) CreateInstructions(w http.ResponseWriter, r *http.Request) {
	format, err := instructions.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	plan, ok := s.plan(w, r)
	if !ok {
		return
	}

	if format == instructions.FormatJSON {
		w.Header().Set("Content-Type", "application/x-ndjson")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	if err := plan.Print(w, instructions.WithFormat(format)); err != nil {
		s.Logger.Error("Instructions write failed", "error", err, "request_id", RequestID(r.Context()))
	}
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) (*weave.Plan, bool) {
	width, err := parseWidth(r.URL.Query().Get("width"))
	if err != nil {
		s.badRequest(w, r, err)
		return nil, false
	}

	data, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}

	plan, err := s.Planner.Plan(r.Context(), weave.Request{Document: data, Width: width})
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return plan, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, err.Error(), "")
			return nil, false
		}
		s.badRequest(w, r, fmt.Errorf("failed to read body: %w", err))
		return nil, false
	}
	return data, true
}

func parseWidth(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("width %q is not a number", raw)
	}
	return &w, nil
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.Warn("Bad request", "error", err, "request_id", RequestID(r.Context()))
	writeError(w, r, http.StatusBadRequest, err.Error(), "")
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	field := ""
	if errors.As(err, &verr) {
		field = verr.Field
	}

	switch {
	case errors.Is(err, domain.ErrInvalidDocument), errors.Is(err, domain.ErrInvalidWidth):
		s.Logger.Info("Rejected document", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), field)
	case errors.Is(err, context.Canceled):
		s.Logger.Debug("Client went away", "request_id", RequestID(r.Context()))
	default:
		s.Logger.Error("Planning failed", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "planning failed", "")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg, field string) {
	body := map[string]string{"error": msg, "request_id": RequestID(r.Context())}
	if field != "" {
		body["field"] = field
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
