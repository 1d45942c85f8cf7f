package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"commute-tracker/internal/api/handlers"
	"commute-tracker/internal/ports"
)

// NewRouter wires the read-only HTTP surface and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete
// adapters). All endpoints only read; samples are written exclusively
// by the poller, so no locking is needed beyond the storage layer's.
func NewRouter(addresses ports.AddressRepository, samples ports.SampleRepository) http.Handler {
	mux := http.NewServeMux()

	addrHandler := &handlers.AddressHandler{Addresses: addresses}
	routeHandler := &handlers.RouteHandler{
		Addresses: addresses,
		Samples:   samples,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/addresses", addrHandler.List)
	mux.HandleFunc("/stats", routeHandler.Stats)
	mux.HandleFunc("/recommend", routeHandler.Recommend)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(mux)
}
