package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/interfaces"
	"github.com/giygas/myoncologist-api/logging"
	"github.com/giygas/myoncologist-api/medicines"
	"github.com/giygas/myoncologist-api/metrics"
)

// multipartOverhead is the allowance for boundaries and part headers on top
// of the image itself.
const multipartOverhead = 1 << 20

// ScanResponse is the result of one scan plus the updated history
type ScanResponse struct {
	Result  entities.MedicineRecord   `json:"result"`
	History []entities.MedicineRecord `json:"history"`
}

// ListMedicines returns the reference medicine table
func (h *HTTPHandlerImpl) ListMedicines(w http.ResponseWriter, r *http.Request) {
	h.respondWithETag(w, r, medicines.Catalog())
}

// CreateScanSession starts a scanner session with an empty history
func (h *HTTPHandlerImpl) CreateScanSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()
	metrics.ScannerSessionsActive.Set(float64(h.sessions.Len()))

	w.Header().Set("Location", "/api/v1/scanner/sessions/"+session.ID)
	h.RespondWithJSON(w, http.StatusCreated, session)
}

// GetScanSession returns a session and its recent scans
func (h *HTTPHandlerImpl) GetScanSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		h.respondWithSessionError(w, err)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, session)
}

// DeleteScanSession ends a session and discards its history
func (h *HTTPHandlerImpl) DeleteScanSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if !h.sessions.Delete(id) {
		h.respondWithSessionError(w, interfaces.ErrSessionNotFound)
		return
	}
	metrics.ScannerSessionsActive.Set(float64(h.sessions.Len()))

	w.WriteHeader(http.StatusNoContent)
}

// CreateScan analyzes an uploaded photo and records the result in the
// session history. Only one scan per session may be pending.
func (h *HTTPHandlerImpl) CreateScan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	img, ok := h.readImage(w, r)
	if !ok {
		return
	}

	isFirstScan, err := h.sessions.BeginScan(id)
	if err != nil {
		h.respondWithSessionError(w, err)
		return
	}
	defer h.sessions.EndScan(id)

	record, err := h.scanner.Analyze(r.Context(), isFirstScan, img)
	if err != nil {
		logging.Warn("Medicine scan aborted", "session_id", id, "error", err)
		h.RespondWithError(w, http.StatusServiceUnavailable, "Analysis was interrupted")
		return
	}

	session, err := h.sessions.AppendScan(id, record)
	if err != nil {
		h.respondWithSessionError(w, err)
		return
	}

	metrics.MedicineScansTotal.WithLabelValues(record.Name).Inc()
	logging.Debug("Medicine scan completed", "session_id", id, "medicine", record.Name, "confidence", record.Confidence)

	h.RespondWithJSON(w, http.StatusCreated, ScanResponse{Result: record, History: session.History})
}

// readImage extracts and checks the "image" part of a multipart upload
func (h *HTTPHandlerImpl) readImage(w http.ResponseWriter, r *http.Request) (medicines.Image, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.RespondWithError(w, http.StatusRequestEntityTooLarge, "Image is too large")
			return medicines.Image{}, false
		}
		h.RespondWithError(w, http.StatusBadRequest, "Request must be multipart/form-data with an image field")
		return medicines.Image{}, false
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("image")
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Request must be multipart/form-data with an image field")
		return medicines.Image{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Could not read uploaded image")
		return medicines.Image{}, false
	}
	if int64(len(data)) > h.maxUploadSize {
		h.RespondWithError(w, http.StatusRequestEntityTooLarge, "Image is too large")
		return medicines.Image{}, false
	}

	mimeType, err := h.validator.ValidateImage(data)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return medicines.Image{}, false
	}

	return medicines.Image{Data: data, MIMEType: mimeType}, true
}

func (h *HTTPHandlerImpl) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateSessionID(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid session id")
		return "", false
	}
	return id, true
}

func (h *HTTPHandlerImpl) respondWithSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interfaces.ErrSessionNotFound):
		h.RespondWithError(w, http.StatusNotFound, "Scanner session not found")
	case errors.Is(err, interfaces.ErrScanInProgress):
		h.RespondWithError(w, http.StatusConflict, "A scan is already in progress for this session")
	default:
		logging.Error("Scanner session error", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
