package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/logger"
	"github.com/joshbaje/drively-backend/internal/pricing"
)

type errorResponse struct {
	Error     string             `json:"error"`
	Conflicts []pricing.Conflict `json:"conflicts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps engine and domain errors onto HTTP statuses. Unavailable
// ranges carry their full conflict list so the client can explain the
// rejection and suggest alternates.
func writeError(w http.ResponseWriter, err error) {
	var (
		invalidRange *pricing.InvalidRangeError
		unavailable  *pricing.UnavailableError
		tooShort     *pricing.DurationTooShortError
		tooLong      *pricing.DurationTooLongError
	)

	switch {
	case errors.As(err, &invalidRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Conflicts: unavailable.Conflicts})
	case errors.As(err, &tooShort), errors.As(err, &tooLong):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrBookingConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

type listResponse struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
