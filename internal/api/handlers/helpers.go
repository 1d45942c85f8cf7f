package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"commute-tracker/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: unknown
// address ids and data-insufficiency are client-visible conditions, not
// server faults.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var routeErr *domain.InvalidRouteError
	switch {
	case errors.As(err, &routeErr):
		writeError(w, r, http.StatusNotFound, routeErr.Error())
	case errors.Is(err, domain.ErrInsufficientData):
		writeError(w, r, http.StatusUnprocessableEntity, "not enough data for this route yet")
	default:
		log.Printf("handler failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
