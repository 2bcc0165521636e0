// Package server exposes the trip, expense, and report services over a
// JSON REST API.
package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mlafefon/split-trip/internal/middleware"
	"github.com/mlafefon/split-trip/internal/rates"
	"github.com/mlafefon/split-trip/internal/service"
)

type Server struct {
	trips    *service.TripService
	expenses *service.ExpenseService
	reports  *service.ReportService
	rates    rates.Provider
}

// New creates a server over the given services. The rates provider may be
// nil, in which case the rates endpoint reports the lookup as unavailable.
func New(trips *service.TripService, expenses *service.ExpenseService, reports *service.ReportService, provider rates.Provider) *Server {
	return &Server{
		trips:    trips,
		expenses: expenses,
		reports:  reports,
		rates:    provider,
	}
}

// Router builds the route table. Metrics run per-route so the label is the
// path template; logging and CORS wrap the router in cmd/server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/trips", s.handleListTrips).Methods(http.MethodGet)
	api.HandleFunc("/trips", s.handleCreateTrip).Methods(http.MethodPost)
	api.HandleFunc("/trips/{tripID}", s.handleGetTrip).Methods(http.MethodGet)
	api.HandleFunc("/trips/{tripID}", s.handleUpdateTrip).Methods(http.MethodPut)
	api.HandleFunc("/trips/{tripID}", s.handleDeleteTrip).Methods(http.MethodDelete)
	api.HandleFunc("/trips/{tripID}/categories", s.handleUpdateCategories).Methods(http.MethodPut)

	api.HandleFunc("/trips/{tripID}/expenses", s.handleAddExpense).Methods(http.MethodPost)
	api.HandleFunc("/trips/{tripID}/expenses/{expenseID}", s.handleUpdateExpense).Methods(http.MethodPut)
	api.HandleFunc("/trips/{tripID}/expenses/{expenseID}", s.handleDeleteExpense).Methods(http.MethodDelete)
	api.HandleFunc("/trips/{tripID}/transfers", s.handleAddTransfer).Methods(http.MethodPost)

	api.HandleFunc("/trips/{tripID}/balances", s.handleBalances).Methods(http.MethodGet)
	api.HandleFunc("/trips/{tripID}/stats", s.handleStats).Methods(http.MethodGet)

	api.HandleFunc("/allocate", s.handleAllocate).Methods(http.MethodPost)
	api.HandleFunc("/rates", s.handleRates).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", middleware.MetricsHandler()).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
