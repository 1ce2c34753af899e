package logging

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func newCapturingLogger(out *strings.Builder) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingMiddlewareSkipsQuietPaths(t *testing.T) {
	var logOutput strings.Builder
	handler := LoggingMiddleware(newCapturingLogger(&logOutput))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			logOutput.Reset()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

			if rr.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", rr.Code)
			}
			if logOutput.Len() != 0 {
				t.Errorf("Expected no logs for %s, got: %s", path, logOutput.String())
			}
		})
	}
}

func TestLoggingMiddlewareLogsRequests(t *testing.T) {
	var logOutput strings.Builder
	handler := LoggingMiddleware(newCapturingLogger(&logOutput))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scanner/sessions", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-42"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	logs := logOutput.String()
	for _, want := range []string{
		"HTTP request",
		"request_id=req-42",
		"method=POST",
		"path=/api/v1/scanner/sessions",
		"status_code=201",
		"bytes_written=5",
		"level=INFO",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("Expected log to contain %q, got: %s", want, logs)
		}
	}
	if strings.Contains(logs, "query=") {
		t.Errorf("Expected no query field without a query string, got: %s", logs)
	}
}

func TestLoggingMiddlewareLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusConflict, "level=WARN"},
		{http.StatusBadGateway, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var logOutput strings.Builder
			handler := LoggingMiddleware(newCapturingLogger(&logOutput))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/medicines?x=1", nil))

			logs := logOutput.String()
			if !strings.Contains(logs, tt.level) {
				t.Errorf("Expected %s for status %d, got: %s", tt.level, tt.status, logs)
			}
			if !strings.Contains(logs, `query="x=1"`) {
				t.Errorf("Expected query field, got: %s", logs)
			}
		})
	}
}

func TestLoggingMiddlewareUnknownRequestID(t *testing.T) {
	var logOutput strings.Builder
	handler := LoggingMiddleware(newCapturingLogger(&logOutput))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/oncologists", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, 12345))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(logOutput.String(), "request_id=unknown") {
		t.Errorf("Expected request_id=unknown for non-string ID, got: %s", logOutput.String())
	}
}
