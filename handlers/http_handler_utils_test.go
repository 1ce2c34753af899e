package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/myoncologist-api/data"
	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/health"
	"github.com/giygas/myoncologist-api/medicines"
	"github.com/giygas/myoncologist-api/oncologists"
	"github.com/giygas/myoncologist-api/speech"
	"github.com/giygas/myoncologist-api/symptoms"
	"github.com/giygas/myoncologist-api/validation"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// fixedRand always returns zero, so later scans pick the first entry at
// the minimum confidence.
type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

// mockAnalyzer returns canned results or an error
type mockAnalyzer struct {
	results []entities.SymptomAnalysisResult
	err     error
	calls   []string
}

func (m *mockAnalyzer) Analyze(_ context.Context, text string) ([]entities.SymptomAnalysisResult, error) {
	m.calls = append(m.calls, text)
	return m.results, m.err
}

// blockingScanner holds every scan until release is closed
type blockingScanner struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingScanner) Analyze(ctx context.Context, isFirstScan bool, img medicines.Image) (entities.MedicineRecord, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
		return entities.MedicineRecord{}, ctx.Err()
	}
	return medicines.NewSelector(fixedRand{}).Select(isFirstScan), nil
}

type mockTranscriber struct {
	transcript speech.Transcript
	err        error
	body       string
	mime       string
}

func (m *mockTranscriber) Transcribe(_ context.Context, audio io.Reader, contentType string) (speech.Transcript, error) {
	b, _ := io.ReadAll(audio)
	m.body = string(b)
	m.mime = contentType
	return m.transcript, m.err
}

// HandlerBuilder assembles a handler from real components, overridable per test
type HandlerBuilder struct {
	deps Dependencies
}

func NewHandlerBuilder() *HandlerBuilder {
	sessions := data.NewSessionContainer()
	directory := oncologists.NewDirectory()
	return &HandlerBuilder{deps: Dependencies{
		Sessions:      sessions,
		Validator:     validation.NewInputValidator(5000),
		Analyzer:      symptoms.NewAnalyzer(0),
		Scanner:       medicines.NewScanner(medicines.NewSelector(fixedRand{}), 0),
		Directory:     directory,
		HealthChecker: health.NewHealthChecker(sessions, directory, 100),
		MaxUploadSize: 1 << 20,

		MaxSymptomLength: 5000,
	}}
}

func (b *HandlerBuilder) WithAnalyzer(a *mockAnalyzer) *HandlerBuilder {
	b.deps.Analyzer = a
	return b
}

func (b *HandlerBuilder) WithScanner(s *blockingScanner) *HandlerBuilder {
	b.deps.Scanner = s
	return b
}

func (b *HandlerBuilder) WithTranscriber(t speech.Transcriber) *HandlerBuilder {
	b.deps.Transcriber = t
	return b
}

func (b *HandlerBuilder) WithMaxUploadSize(n int64) *HandlerBuilder {
	b.deps.MaxUploadSize = n
	return b
}

func (b *HandlerBuilder) WithMaxSymptomLength(n int) *HandlerBuilder {
	b.deps.Validator = validation.NewInputValidator(n)
	b.deps.MaxSymptomLength = n
	return b
}

func (b *HandlerBuilder) Build() *HTTPHandlerImpl {
	return NewHTTPHandler(b.deps).(*HTTPHandlerImpl)
}

// withURLParam attaches a chi route parameter to the request
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// imageUpload builds a multipart request with one file part
func imageUpload(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "photo.png")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scanner/sessions/x/scans", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for scan to start")
	}
}
