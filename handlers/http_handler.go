// Package handlers provides HTTP request handlers for the MyOncologist API endpoints.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/giygas/myoncologist-api/interfaces"
	"github.com/giygas/myoncologist-api/logging"
	"github.com/giygas/myoncologist-api/speech"
	"github.com/giygas/myoncologist-api/validation"
)

const (
	defaultMaxUploadSize    = 10 << 20
	defaultMaxSymptomLength = 5000
)

// Dependencies groups everything the handlers need.
type Dependencies struct {
	Sessions      interfaces.SessionStore
	Validator     interfaces.InputValidator
	Analyzer      interfaces.SymptomAnalyzer
	Scanner       interfaces.MedicineScanner
	Directory     interfaces.OncologistDirectory
	Transcriber   speech.Transcriber
	HealthChecker interfaces.HealthChecker
	MaxUploadSize int64

	// MaxSymptomLength sizes the analysis request body limit
	MaxSymptomLength int
}

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	sessions       interfaces.SessionStore
	validator      interfaces.InputValidator
	analyzer       interfaces.SymptomAnalyzer
	scanner        interfaces.MedicineScanner
	directory      interfaces.OncologistDirectory
	transcriber    speech.Transcriber
	healthChecker  interfaces.HealthChecker
	maxUploadSize  int64
	maxSymptomBody int64
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(deps Dependencies) interfaces.HTTPHandler {
	transcriber := deps.Transcriber
	if transcriber == nil {
		transcriber = speech.Unsupported{}
	}

	maxUpload := deps.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadSize
	}

	maxSymptoms := deps.MaxSymptomLength
	if maxSymptoms <= 0 {
		maxSymptoms = defaultMaxSymptomLength
	}

	return &HTTPHandlerImpl{
		sessions:       deps.Sessions,
		validator:      deps.Validator,
		analyzer:       deps.Analyzer,
		scanner:        deps.Scanner,
		directory:      deps.Directory,
		transcriber:    transcriber,
		healthChecker:  deps.HealthChecker,
		maxUploadSize:  maxUpload,
		maxSymptomBody: validation.SymptomBodyLimit(maxSymptoms),
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string         `json:"status"`
	Uptime        string         `json:"uptime"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes the standard error envelope
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// respondWithETag serves reference data that only changes on deploy and
// answers 304 when the client already holds the current version.
func (h *HTTPHandlerImpl) respondWithETag(w http.ResponseWriter, r *http.Request, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}

	etag := GenerateETag(data)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if CheckETag(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GenerateETag returns a quoted 64-bit content hash
func GenerateETag(data []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(data))
}

// CheckETag reports whether If-None-Match contains etag or a wildcard
func CheckETag(r *http.Request, etag string) bool {
	header := r.Header.Get("If-None-Match")
	if header == "" {
		return false
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// HealthCheck reports service health plus runtime statistics
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, data, httpStatus := h.healthChecker.HealthCheck()
	uptime := time.Since(h.sessions.GetServerStartTime())

	response := HealthResponse{
		Status:        status,
		Uptime:        formatUptimeHuman(uptime),
		UptimeSeconds: uptime.Seconds(),
		Data:          data,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}
