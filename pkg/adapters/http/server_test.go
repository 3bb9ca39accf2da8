package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/internal/testutils"
	"github.com/aretw0/weave/pkg/document"
	"github.com/aretw0/weave/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingPlanner returns err from every call.
type failingPlanner struct{ err error }

func (f failingPlanner) Plan(context.Context, weave.Request) (*weave.Plan, error) { return nil, f.err }
func (f failingPlanner) Validate([]byte) (*document.Document, error)             { return nil, f.err }

func disjoint(t *testing.T) []byte {
	return testutils.Document(t, 6, [2]int{0, 1}, [2]int{3, 4}, [2]int{4, 5}, [2]int{1, 2})
}

func TestHealthAndInfo(t *testing.T) {
	handler := NewHandler(weave.New())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "weave-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(weave.Version), info["version"])
}

func TestOpenAPISpec(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(weave.New()).ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestCreatePlan(t *testing.T) {
	handler := NewHandler(weave.New())

	req := httptest.NewRequest("POST", "/plan?width=20", bytes.NewReader(disjoint(t)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var plan weave.Plan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Len(t, plan.Traversal, 4)
	assert.Equal(t, 3, plan.Traversal[2].From)
	require.NotNil(t, plan.Thread)
	assert.Equal(t, 20.0, plan.Thread.WidthInches)
}

func TestCreateInstructions(t *testing.T) {
	handler := NewHandler(weave.New())

	t.Run("text", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/instructions", bytes.NewReader(disjoint(t))))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "    around from pin 2 to pin 3\n")
		assert.Contains(t, w.Body.String(), "Charlie  3 -> 4\n")
	})

	t.Run("json", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/instructions?format=json&width=12", bytes.NewReader(disjoint(t))))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		var last map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
		assert.Equal(t, "summary", last["type"])
	})

	t.Run("unknown format", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/instructions?format=xml", bytes.NewReader(disjoint(t))))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestErrorMapping(t *testing.T) {
	handler := NewHandler(weave.New())

	tests := []struct {
		name   string
		target string
		body   []byte
		status int
		field  string
	}{
		{"bad width query", "/plan?width=wide", disjoint(t), http.StatusBadRequest, ""},
		{"non-positive width", "/plan?width=0", disjoint(t), http.StatusUnprocessableEntity, ""},
		{"malformed JSON", "/plan", []byte("{"), http.StatusUnprocessableEntity, ""},
		{"self loop", "/validate", func() []byte {
			f := testutils.Fixture(4, [2]int{0, 1})
			pin := f["pin_locations"].([]any)[2]
			f["line_segments"] = []any{[]any{pin, pin}}
			return testutils.Marshal(t, f)
		}(), http.StatusUnprocessableEntity, "line_segments[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("POST", tt.target, bytes.NewReader(tt.body)))

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, w.Header().Get(RequestIDHeader), body["request_id"])
			assert.Equal(t, tt.field, body["field"])
		})
	}
}

func TestInternalError(t *testing.T) {
	handler := NewHandler(failingPlanner{err: errors.New("boom")})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/plan", strings.NewReader("{}")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestValidateEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(weave.New()).ServeHTTP(w, httptest.NewRequest("POST", "/validate", bytes.NewReader(disjoint(t))))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pins":6,"declared_pin_count":6,"segments":4}`, w.Body.String())
}

func TestRequestIDPropagation(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	NewHandler(weave.New()).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	planner := weave.New(weave.WithMetrics(observability.NewMetrics(reg)))
	handler := NewHandler(planner, WithMetrics(reg))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/plan", bytes.NewReader(disjoint(t))))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `weave_plans_total{outcome="ok"} 1`)

	w = httptest.NewRecorder()
	NewHandler(planner).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
