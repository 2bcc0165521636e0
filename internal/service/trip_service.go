// Package service orchestrates trip and expense operations on top of the
// store and the pure engine.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mlafefon/split-trip/internal/models"
	"github.com/mlafefon/split-trip/internal/storage"
)

// TripService manages trips and their membership.
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

func validateTrip(trip *models.Trip) error {
	if trip.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidTrip)
	}
	if len(trip.Participants) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidTrip)
	}
	return nil
}

// CreateTrip validates and persists a new trip. Trips without a category
// registry start with the default one.
func (s *TripService) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return nil, err
	}
	if len(trip.Categories) == 0 {
		trip.Categories = models.DefaultCategories()
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, err
	}
	slog.Info("Trip created", "trip_id", trip.ID, "destination", trip.Destination,
		"participants", len(trip.Participants))
	return trip, nil
}

// GetTrip loads a trip, normalizing legacy expense records at the boundary.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Normalize()
	return trip, nil
}

// ListTrips returns all trips, newest first.
func (s *TripService) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range trips {
		t.Normalize()
	}
	return trips, nil
}

// UpdateTrip updates the trip's metadata and membership. Participants
// referenced by any expense cannot be removed; renames are fine.
func (s *TripService) UpdateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	current, err := s.store.GetTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	retained := make(map[string]bool, len(trip.Participants))
	for _, p := range trip.Participants {
		retained[p.ID] = true
	}
	for _, p := range current.Participants {
		if !retained[p.ID] && current.ParticipantReferenced(p.ID) {
			return nil, fmt.Errorf("%w: %s", ErrParticipantInUse, p.ID)
		}
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", trip.ID, "error", err)
		return nil, err
	}
	slog.Info("Trip updated", "trip_id", trip.ID)
	return s.GetTrip(ctx, trip.ID)
}

// DeleteTrip removes a trip and all its expenses.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		return err
	}
	slog.Info("Trip deleted", "trip_id", tripID)
	return nil
}

// UpdateCategories replaces the trip's category registry. Expenses keep
// their tags even if the matching category is removed; tag validity
// against the registry is a UI concern.
func (s *TripService) UpdateCategories(ctx context.Context, tripID string, categories []models.Category) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Categories = categories
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateCategories failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	slog.Info("Categories updated", "trip_id", tripID, "count", len(categories))
	return s.GetTrip(ctx, tripID)
}
