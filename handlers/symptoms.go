package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/logging"
	"github.com/giygas/myoncologist-api/metrics"
	"github.com/giygas/myoncologist-api/speech"
)

// AnalyzeRequest is the body of POST /api/v1/symptoms/analyze
type AnalyzeRequest struct {
	Symptoms string `json:"symptoms"`
}

// AnalyzeResponse carries the results and the texts read aloud for them
type AnalyzeResponse struct {
	Results    []entities.SymptomAnalysisResult `json:"results"`
	Summary    string                           `json:"summary"`
	AvatarLine string                           `json:"avatarLine"`
	Disclaimer string                           `json:"disclaimer"`
}

// AnalyzeSymptoms classifies a free-text symptom description
func (h *HTTPHandlerImpl) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxSymptomBody)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.RespondWithError(w, http.StatusRequestEntityTooLarge, "Symptom description is too long")
			return
		}
		h.RespondWithError(w, http.StatusBadRequest, "Request body must be JSON with a symptoms field")
		return
	}

	text, err := h.validator.ValidateSymptomText(req.Symptoms)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.analyzer.Analyze(r.Context(), text)
	if err != nil {
		// The client went away during the processing delay
		logging.Warn("Symptom analysis aborted", "error", err)
		h.RespondWithError(w, http.StatusServiceUnavailable, "Analysis was interrupted")
		return
	}

	for _, result := range results {
		metrics.SymptomAnalysesTotal.WithLabelValues(result.Category).Inc()
	}

	h.RespondWithJSON(w, http.StatusOK, AnalyzeResponse{
		Results:    results,
		Summary:    speech.Summary(results),
		AvatarLine: speech.AvatarLine(results),
		Disclaimer: speech.Disclaimer,
	})
}

// TranscribeSpeech turns a recorded symptom description into text
func (h *HTTPHandlerImpl) TranscribeSpeech(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.transcriber.(speech.Unsupported); ok {
		h.RespondWithError(w, http.StatusServiceUnavailable, "Speech recognition is not supported")
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	transcript, err := h.transcriber.Transcribe(r.Context(), body, r.Header.Get("Content-Type"))
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.RespondWithError(w, http.StatusRequestEntityTooLarge, "Audio recording is too large")
		case errors.Is(err, speech.ErrNotSupported):
			h.RespondWithError(w, http.StatusServiceUnavailable, "Speech recognition is not supported")
		default:
			logging.Error("Transcription failed", "error", err)
			h.RespondWithError(w, http.StatusBadGateway, "Could not transcribe audio")
		}
		return
	}

	h.RespondWithJSON(w, http.StatusOK, transcript)
}
