package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
)

// writeError maps service errors onto the JSON error envelope. Anything that is not
// a domain error is logged with msg and reported as internal.
func writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		domain.NewErrorResponse(w, domain.ErrNotFound, http.StatusNotFound)
	case errors.Is(err, domain.ErrValidation):
		domain.NewErrorResponse(w, domain.ErrValidation, http.StatusBadRequest)
	case errors.Is(err, domain.ErrBadRequest):
		domain.NewErrorResponse(w, domain.ErrBadRequest, http.StatusBadRequest)
	case errors.Is(err, domain.ErrReviewerExists):
		domain.NewErrorResponse(w, domain.ErrReviewerExists, http.StatusConflict)
	case errors.Is(err, domain.ErrReviewerCap):
		domain.NewErrorResponse(w, domain.ErrReviewerCap, http.StatusConflict)
	default:
		slog.Error(msg, "error", err)
		domain.NewErrorResponse(w, domain.ErrInternal, http.StatusInternalServerError)
	}
}

func writeOK(w http.ResponseWriter, resp any) {
	if err := domain.WriteResponse(w, http.StatusOK, resp); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any, what string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error("failed to decode "+what+" request", "error", err)
		domain.NewErrorResponse(w, domain.ErrBadRequest, http.StatusBadRequest)

		return false
	}

	return true
}
