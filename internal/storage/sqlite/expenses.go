package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlafefon/split-trip/internal/models"
	"github.com/mlafefon/split-trip/internal/storage"
)

// CreateExpense appends an expense to a trip.
func (s *SQLiteStore) CreateExpense(ctx context.Context, tripID string, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, amount, date, tag, original_currency, exchange_rate, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, tripID, e.Description, e.Amount, e.Date.Unix(), e.Tag,
		nullable(e.OriginalCurrency), nullableFloat(e.ExchangeRate), nullable(e.Notes),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertShares(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense replaces an existing expense record.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, tripID string, e *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount = ?, date = ?, tag = ?,
		 original_currency = ?, exchange_rate = ?, notes = ?
		 WHERE id = ? AND trip_id = ?`,
		e.Description, e.Amount, e.Date.Unix(), e.Tag,
		nullable(e.OriginalCurrency), nullableFloat(e.ExchangeRate), nullable(e.Notes),
		e.ID, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", e.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_payers WHERE expense_id = ?", e.ID); err != nil {
		return fmt.Errorf("failed to clear payers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", e.ID); err != nil {
		return fmt.Errorf("failed to clear splits: %w", err)
	}
	if err := insertShares(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes one expense from a trip.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND trip_id = ?", expenseID, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

func insertShares(ctx context.Context, tx *sql.Tx, e *models.Expense) error {
	for i, p := range e.Payers {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_payers (expense_id, participant_id, amount, position) VALUES (?, ?, ?, ?)",
			e.ID, p.ParticipantID, p.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}
	for i, sp := range e.Splits {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, participant_id, amount, position) VALUES (?, ?, ?, ?)",
			e.ID, sp.ParticipantID, sp.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

// loadExpenses fills trip.Expenses, oldest first.
func (s *SQLiteStore) loadExpenses(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, date, tag, original_currency, exchange_rate, notes
		 FROM expenses WHERE trip_id = ? ORDER BY created_at, id`,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		var date int64
		var currency, notes sql.NullString
		var rate sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &date, &e.Tag, &currency, &rate, &notes); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = time.Unix(date, 0).UTC()
		if currency.Valid {
			e.OriginalCurrency = currency.String
		}
		if rate.Valid {
			e.ExchangeRate = rate.Float64
		}
		if notes.Valid {
			e.Notes = notes.String
		}
		trip.Expenses = append(trip.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		if err := s.loadShares(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, e *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, amount FROM expense_payers WHERE expense_id = ? ORDER BY position",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.PayerShare
		if err := rows.Scan(&p.ParticipantID, &p.Amount); err != nil {
			return fmt.Errorf("failed to scan payer: %w", err)
		}
		e.Payers = append(e.Payers, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payers: %w", err)
	}

	splitRows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, amount FROM expense_splits WHERE expense_id = ? ORDER BY position",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var sp models.ExpenseSplit
		if err := splitRows.Scan(&sp.ParticipantID, &sp.Amount); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		e.Splits = append(e.Splits, sp)
	}
	if err := splitRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}
