// Package health provides health checking functionality for the MyOncologist API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/myoncologist-api/interfaces"
	"github.com/giygas/myoncologist-api/medicines"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	sessions    interfaces.SessionStore
	directory   interfaces.OncologistDirectory
	maxSessions int
	medicines   func() []string
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(sessions interfaces.SessionStore, directory interfaces.OncologistDirectory, maxSessions int) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		sessions:    sessions,
		directory:   directory,
		maxSessions: maxSessions,
		medicines:   medicines.Names,
	}
}

// HealthCheck reports unhealthy when reference data is missing and degraded
// when the session store is over capacity.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	medicineCount := len(h.medicines())
	oncologistCount := h.directory.Len()
	sessionCount := h.sessions.Len()
	uptime := time.Since(h.sessions.GetServerStartTime())

	switch {
	case medicineCount == 0 || oncologistCount == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case h.maxSessions > 0 && sessionCount > h.maxSessions:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"uptime_hours":    math.Round(uptime.Hours()*10) / 10,
		"medicines":       medicineCount,
		"oncologists":     oncologistCount,
		"active_sessions": sessionCount,
		"max_sessions":    h.maxSessions,
	}

	return status, data, httpStatus
}
