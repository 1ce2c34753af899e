// Package interfaces defines core abstractions for the MyOncologist API
// to improve testability and separation of concerns.
package interfaces

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/medicines"
)

var (
	// ErrSessionNotFound is returned for unknown or expired scanner sessions.
	ErrSessionNotFound = errors.New("scanner session not found")
	// ErrScanInProgress is returned when a session already has a pending scan.
	ErrScanInProgress = errors.New("a scan is already in progress for this session")
)

// SessionStore defines the contract for scanner session storage.
// Sessions live in memory only and are discarded when deleted or swept.
type SessionStore interface {
	Create() entities.ScanSession
	Get(id string) (entities.ScanSession, error)
	Delete(id string) bool
	Len() int

	// BeginScan marks a scan as pending and reports whether the session
	// had no history yet. Fails with ErrScanInProgress while one is pending.
	BeginScan(id string) (isFirstScan bool, err error)
	EndScan(id string)
	AppendScan(id string, record entities.MedicineRecord) (entities.ScanSession, error)

	// Sweep evicts sessions idle for longer than maxIdle and returns how many.
	Sweep(maxIdle time.Duration) int
	GetServerStartTime() time.Time
}

// SymptomAnalyzer produces analysis results for a free-text description.
type SymptomAnalyzer interface {
	Analyze(ctx context.Context, text string) ([]entities.SymptomAnalysisResult, error)
}

// MedicineScanner identifies the medicine in an uploaded photo.
type MedicineScanner interface {
	Analyze(ctx context.Context, isFirstScan bool, img medicines.Image) (entities.MedicineRecord, error)
}

// OncologistDirectory is the read-only oncologist listing.
type OncologistDirectory interface {
	List() []entities.OncologistProfile
	Get(id string) (entities.OncologistProfile, bool)
	Search(query string) []entities.OncologistProfile
	Len() int
}

// Scheduler defines the contract for background jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	AnalyzeSymptoms(w http.ResponseWriter, r *http.Request)
	TranscribeSpeech(w http.ResponseWriter, r *http.Request)

	ListOncologists(w http.ResponseWriter, r *http.Request)
	GetOncologist(w http.ResponseWriter, r *http.Request)
	BookAppointment(w http.ResponseWriter, r *http.Request)

	ListMedicines(w http.ResponseWriter, r *http.Request)
	CreateScanSession(w http.ResponseWriter, r *http.Request)
	GetScanSession(w http.ResponseWriter, r *http.Request)
	DeleteScanSession(w http.ResponseWriter, r *http.Request)
	CreateScan(w http.ResponseWriter, r *http.Request)

	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns the status label, report details and HTTP status.
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// InputValidator validates user input before it reaches the domain packages.
type InputValidator interface {
	// ValidateSymptomText returns the trimmed text.
	ValidateSymptomText(text string) (string, error)
	// ValidateImage sniffs the content and returns its MIME type.
	ValidateImage(data []byte) (string, error)
	ValidateSessionID(id string) error
	ValidateOncologistID(id string) error
	// ValidateSearchQuery returns the trimmed query; empty is allowed.
	ValidateSearchQuery(query string) (string, error)
}
