package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/myoncologist-api/oncologists"
)

// ListOncologists returns the directory, filtered by ?q= when present
func (h *HTTPHandlerImpl) ListOncologists(w http.ResponseWriter, r *http.Request) {
	query, err := h.validator.ValidateSearchQuery(r.URL.Query().Get("q"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if query == "" {
		h.respondWithETag(w, r, h.directory.List())
		return
	}

	h.RespondWithJSON(w, http.StatusOK, h.directory.Search(query))
}

// GetOncologist returns a single profile
func (h *HTTPHandlerImpl) GetOncologist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateOncologistID(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, ok := h.directory.Get(id)
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Oncologist not found")
		return
	}

	h.respondWithETag(w, r, profile)
}

// BookAppointment is not available yet. Known profiles get the coming-soon
// notice, unknown ones a 404.
func (h *HTTPHandlerImpl) BookAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateOncologistID(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := h.directory.Get(id); !ok {
		h.RespondWithError(w, http.StatusNotFound, "Oncologist not found")
		return
	}

	h.RespondWithError(w, http.StatusNotImplemented, oncologists.BookingUnavailableMessage)
}
