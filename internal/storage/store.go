// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mlafefon/split-trip/internal/models"
)

// ErrNotFound is returned (wrapped) when a trip or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// The store guarantees participant-id referential integrity within a trip
// and preserves the order of participants, payers, and splits, which the
// engine's deterministic tie-breaks depend on.
type Store interface {
	// CreateTrip persists a new trip. Missing ids (trip, participants,
	// categories) and CreatedAt are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with its participants, categories, and
	// expenses.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips retrieves all trips, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// UpdateTrip updates a trip's destination, currencies, participants,
	// and categories. Expenses are managed through the expense methods
	// and are left untouched.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip and everything it owns.
	DeleteTrip(ctx context.Context, tripID string) error

	// CreateExpense appends an expense to a trip.
	CreateExpense(ctx context.Context, tripID string, e *models.Expense) error

	// UpdateExpense replaces an existing expense record.
	UpdateExpense(ctx context.Context, tripID string, e *models.Expense) error

	// DeleteExpense removes one expense from a trip.
	DeleteExpense(ctx context.Context, tripID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
