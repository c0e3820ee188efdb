package handler

import (
	"errors"
	"net/http"

	"github.com/maaylex/maaylex-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and its detail stays server-side.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	case errors.Is(err, model.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient role"})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, model.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})
	case errors.Is(err, model.ErrInvalidState):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid state"})
	case errors.Is(err, model.ErrUpstream):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream service failed"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// badRequest reports a malformed or invalid request payload.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
