// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mlafefon/split-trip/internal/models"
	"github.com/mlafefon/split-trip/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates
// the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip with its participants and categories.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}
	for i := range trip.Participants {
		if trip.Participants[i].ID == "" {
			trip.Participants[i].ID = uuid.New().String()
		}
	}
	for i := range trip.Categories {
		if trip.Categories[i].ID == "" {
			trip.Categories[i].ID = uuid.New().String()
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, destination, base_currency, trip_currency, created_at) VALUES (?, ?, ?, ?, ?)",
		trip.ID, trip.Destination, trip.BaseCurrency, trip.TripCurrency, trip.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if err := insertMembership(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertMembership writes the trip's participant and category rows.
func insertMembership(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	for i, p := range trip.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO trip_participants (trip_id, participant_id, name, position) VALUES (?, ?, ?, ?)",
			trip.ID, p.ID, p.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	for i, c := range trip.Categories {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO trip_categories (trip_id, category_id, name, icon, color, position) VALUES (?, ?, ?, ?, ?, ?)",
			trip.ID, c.ID, c.Name, c.Icon, c.Color, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}
	}
	return nil
}

// GetTrip retrieves a trip with participants, categories, and expenses.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, destination, base_currency, trip_currency, created_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.Destination, &trip.BaseCurrency, &trip.TripCurrency, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	trip.CreatedAt = time.Unix(createdAt, 0).UTC()

	if err := s.loadMembership(ctx, trip); err != nil {
		return nil, err
	}
	if err := s.loadExpenses(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// ListTrips retrieves all trips, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM trips ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// UpdateTrip replaces a trip's metadata, participants, and categories.
// Expenses are untouched.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	for i := range trip.Participants {
		if trip.Participants[i].ID == "" {
			trip.Participants[i].ID = uuid.New().String()
		}
	}
	for i := range trip.Categories {
		if trip.Categories[i].ID == "" {
			trip.Categories[i].ID = uuid.New().String()
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE trips SET destination = ?, base_currency = ?, trip_currency = ? WHERE id = ?",
		trip.Destination, trip.BaseCurrency, trip.TripCurrency, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM trip_participants WHERE trip_id = ?", trip.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM trip_categories WHERE trip_id = ?", trip.ID); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	if err := insertMembership(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip; cascades take its rows along.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) loadMembership(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, name FROM trip_participants WHERE trip_id = ? ORDER BY position",
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		trip.Participants = append(trip.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	catRows, err := s.db.QueryContext(ctx,
		"SELECT category_id, name, icon, color FROM trip_categories WHERE trip_id = ? ORDER BY position",
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var c models.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		trip.Categories = append(trip.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate categories: %w", err)
	}
	return nil
}
