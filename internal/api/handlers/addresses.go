package handlers

import (
	"net/http"

	"commute-tracker/internal/api/dto"
	"commute-tracker/internal/domain"
	"commute-tracker/internal/ports"
)

type AddressHandler struct {
	Addresses ports.AddressRepository
}

// List returns all saved addresses, optionally filtered by ?kind=.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var kind domain.Kind
	if k := r.URL.Query().Get("kind"); k != "" {
		parsed, err := domain.ParseKind(k)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		kind = parsed
	}

	addresses, err := h.Addresses.ListAddresses(r.Context(), kind)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]dto.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, dto.FromAddress(a))
	}

	writeJSON(w, r, http.StatusOK, out)
}
