package handlers

import (
	"net/http"
	"strconv"

	"commute-tracker/internal/api/dto"
	"commute-tracker/internal/domain"
	"commute-tracker/internal/ports"
	"commute-tracker/internal/services"
)

// RouteHandler serves statistics and recommendations for a directed
// route identified by origin/destination address ids.
type RouteHandler struct {
	Addresses ports.AddressRepository
	Samples   ports.SampleRepository
}

func (h *RouteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	originID, destinationID, ok := routeParams(w, r)
	if !ok {
		return
	}

	agg := services.NewAggregator(h.Addresses, h.Samples)
	stats, err := agg.Stats(r.Context(), originID, destinationID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromStats(originID, destinationID, stats))
}

func (h *RouteHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	originID, destinationID, ok := routeParams(w, r)
	if !ok {
		return
	}

	arrival := r.URL.Query().Get("arrival")
	if arrival == "" {
		arrival = "09:00"
	}
	arriveBy, err := domain.ParseTimeOfDay(arrival)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rec := services.NewRecommender(h.Addresses, h.Samples)
	recs, err := rec.Recommend(r.Context(), originID, destinationID, arriveBy)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRecommendations(recs))
}

func routeParams(w http.ResponseWriter, r *http.Request) (originID, destinationID int64, ok bool) {
	originID, err := strconv.ParseInt(r.URL.Query().Get("origin"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "origin must be an address id")
		return 0, 0, false
	}

	destinationID, err = strconv.ParseInt(r.URL.Query().Get("destination"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "destination must be an address id")
		return 0, 0, false
	}

	return originID, destinationID, true
}
