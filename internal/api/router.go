package api

import (
	"accident-alert-service/internal/api/handlers"
	"accident-alert-service/internal/platform/metrics"
	"accident-alert-service/internal/ports"
	"net/http"

	"github.com/gorilla/mux"
)

// Deps holds the ports the HTTP layer depends on. Geocoder may be nil.
type Deps struct {
	Store    ports.FacilityStore
	Reports  ports.ReportRepository
	Geocoder ports.ReverseGeocoder
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, requestLogger)

	nearestHandler := &handlers.NearestHandler{Store: deps.Store}
	alertHandler := &handlers.AlertHandler{
		Store:    deps.Store,
		Reports:  deps.Reports,
		Geocoder: deps.Geocoder,
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/nearest", nearestHandler.Find).Methods(http.MethodGet)
	r.HandleFunc("/alerts", alertHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/reports", alertHandler.List).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"method not allowed"}` + "\n"))
	})

	return r
}
