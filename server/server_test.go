package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/giygas/myoncologist-api/config"
	"github.com/giygas/myoncologist-api/data"
	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/handlers"
	"github.com/giygas/myoncologist-api/health"
	"github.com/giygas/myoncologist-api/medicines"
	"github.com/giygas/myoncologist-api/oncologists"
	"github.com/giygas/myoncologist-api/symptoms"
	"github.com/giygas/myoncologist-api/validation"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		Address:          "127.0.0.1",
		Env:              config.EnvTest,
		MaxRequestBody:   1024 * 1024,
		MaxHeaderSize:    8 * 1024,
		MaxUploadSize:    2 * 1024 * 1024,
		MaxSessions:      100,
		MaxSymptomLength: 5000,
		AllowedOrigins:   []string{"http://localhost:3000"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := testConfig()
	sessions := data.NewSessionContainer()
	directory := oncologists.NewDirectory()

	handler := handlers.NewHTTPHandler(handlers.Dependencies{
		Sessions:      sessions,
		Validator:     validation.NewInputValidator(cfg.MaxSymptomLength),
		Analyzer:      symptoms.NewAnalyzer(0),
		Scanner:       medicines.NewScanner(medicines.NewSelector(nil), 0),
		Directory:     directory,
		HealthChecker: health.NewHealthChecker(sessions, directory, cfg.MaxSessions),
		MaxUploadSize: cfg.MaxUploadSize,

		MaxSymptomLength: cfg.MaxSymptomLength,
	})

	s := NewServer(cfg, handler)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"medicines", http.MethodGet, "/api/v1/medicines", "", http.StatusOK},
		{"oncologists", http.MethodGet, "/api/v1/oncologists", "", http.StatusOK},
		{"oncologist search", http.MethodGet, "/api/v1/oncologists?q=spanish", "", http.StatusOK},
		{"oncologist by id", http.MethodGet, "/api/v1/oncologists/1", "", http.StatusOK},
		{"unknown oncologist", http.MethodGet, "/api/v1/oncologists/99", "", http.StatusNotFound},
		{"booking", http.MethodPost, "/api/v1/oncologists/2/appointments", "", http.StatusNotImplemented},
		{"analyze", http.MethodPost, "/api/v1/symptoms/analyze", `{"symptoms":"persistent cough"}`, http.StatusOK},
		{"analyze empty", http.MethodPost, "/api/v1/symptoms/analyze", `{"symptoms":"   "}`, http.StatusBadRequest},
		{"transcribe unsupported", http.MethodPost, "/api/v1/speech/transcribe", "audio", http.StatusServiceUnavailable},
		{"create session", http.MethodPost, "/api/v1/scanner/sessions", "", http.StatusCreated},
		{"bad session id", http.MethodGet, "/api/v1/scanner/sessions/not-a-uuid", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/v1/nothing", "", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/v1/medicines", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" && strings.HasPrefix(tt.body, "{") {
				req.Header.Set("Content-Type", "application/json")
			}
			rr := serve(s, req)
			if rr.Code != tt.status {
				t.Errorf("Expected status %d for %s %s, got %d: %s", tt.status, tt.method, tt.path, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestScannerFlow(t *testing.T) {
	s := newTestServer(t)

	rr := serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/scanner/sessions", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	var session entities.ScanSession
	if err := json.Unmarshal(rr.Body.Bytes(), &session); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	if rr.Header().Get("Location") != "/api/v1/scanner/sessions/"+session.ID {
		t.Errorf("Unexpected Location header %q", rr.Header().Get("Location"))
	}

	scansPath := "/api/v1/scanner/sessions/" + session.ID + "/scans"
	for i := range 3 {
		rr = serve(s, upload(t, scansPath, pngBytes))
		if rr.Code != http.StatusCreated {
			t.Fatalf("Scan %d: expected status 201, got %d: %s", i, rr.Code, rr.Body.String())
		}
		var resp handlers.ScanResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode scan: %v", err)
		}
		if i == 0 && resp.Result.Name != "Ibuprofen" {
			t.Errorf("Expected first scan to be Ibuprofen, got %s", resp.Result.Name)
		}
		if len(resp.History) != i+1 {
			t.Errorf("Expected %d history entries, got %d", i+1, len(resp.History))
		}
	}

	rr = serve(s, upload(t, scansPath, []byte("plain text, not a picture")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for non-image, got %d", rr.Code)
	}

	rr = serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/scanner/sessions/"+session.ID, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &session); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	if session.ScanCount != 3 || len(session.History) != 3 {
		t.Errorf("Expected 3 scans, got count=%d history=%d", session.ScanCount, len(session.History))
	}

	rr = serve(s, httptest.NewRequest(http.MethodDelete, "/api/v1/scanner/sessions/"+session.ID, nil))
	if rr.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rr.Code)
	}
	rr = serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/scanner/sessions/"+session.ID, nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", rr.Code)
	}
}

func TestMedicinesETagRoundTrip(t *testing.T) {
	s := newTestServer(t)

	rr := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/medicines", nil))
	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Fatal("Expected ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/medicines", nil)
	req.Header.Set("If-None-Match", etag)
	rr = serve(s, req)
	if rr.Code != http.StatusNotModified {
		t.Errorf("Expected status 304, got %d", rr.Code)
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	s := newTestServer(t)

	rr := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/medicines/", nil))
	if rr.Code != http.StatusMovedPermanently {
		t.Errorf("Expected status 301, got %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/symptoms/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := serve(s, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/medicines", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = serve(s, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin header for unknown origin, got %q", got)
	}
}

func TestRateLimitHeadersPresent(t *testing.T) {
	s := newTestServer(t)

	rr := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("Expected rate limit headers on response")
	}
}

func upload(t *testing.T, path string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "photo.png")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
