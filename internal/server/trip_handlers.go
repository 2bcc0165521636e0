package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mlafefon/split-trip/internal/models"
)

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListTrips(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip models.Trip
	if err := decodeJSON(r, &trip); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.trips.CreateTrip(r.Context(), &trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetTrip(r.Context(), mux.Vars(r)["tripID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var trip models.Trip
	if err := decodeJSON(r, &trip); err != nil {
		writeBadRequest(w, err)
		return
	}
	trip.ID = mux.Vars(r)["tripID"]
	updated, err := s.trips.UpdateTrip(r.Context(), &trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.DeleteTrip(r.Context(), mux.Vars(r)["tripID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := decodeJSON(r, &categories); err != nil {
		writeBadRequest(w, err)
		return
	}
	updated, err := s.trips.UpdateCategories(r.Context(), mux.Vars(r)["tripID"], categories)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
