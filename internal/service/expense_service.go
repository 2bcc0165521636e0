package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlafefon/split-trip/internal/expense"
	"github.com/mlafefon/split-trip/internal/models"
	"github.com/mlafefon/split-trip/internal/rates"
	"github.com/mlafefon/split-trip/internal/storage"
)

// ExpenseService builds and persists expenses and transfers.
type ExpenseService struct {
	store storage.Store
	rates rates.Provider // optional; nil means rates must come from the caller
}

// NewExpenseService creates a new ExpenseService. provider may be nil,
// in which case cross-currency entries need an explicit exchange rate.
func NewExpenseService(store storage.Store, provider rates.Provider) *ExpenseService {
	return &ExpenseService{store: store, rates: provider}
}

// resolveRate picks the exchange rate for an entry. Same-currency entries
// default to 1; otherwise a caller-supplied rate wins, then the provider.
// A provider failure is surfaced as ErrRateUnavailable, never papered
// over with a default.
func (s *ExpenseService) resolveRate(ctx context.Context, trip *models.Trip, currency string, rate float64) (float64, error) {
	if currency == "" || currency == trip.TripCurrency {
		if rate == 0 {
			return 1, nil
		}
		return rate, nil
	}
	if rate != 0 {
		return rate, nil
	}
	if s.rates == nil {
		return 0, fmt.Errorf("%w: no rate given for %s", ErrRateUnavailable, currency)
	}
	latest, err := s.rates.Latest(ctx, currency)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	r, ok := latest[trip.TripCurrency]
	if !ok {
		return 0, fmt.Errorf("%w: provider has no %s rate", ErrRateUnavailable, trip.TripCurrency)
	}
	return r, nil
}

// checkParticipants verifies every id the entry references belongs to the trip.
func checkParticipants(trip *models.Trip, in expense.Input) error {
	check := func(id string) error {
		if !trip.HasParticipant(id) {
			return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
		}
		return nil
	}
	if in.PayerID != "" {
		if err := check(in.PayerID); err != nil {
			return err
		}
	}
	for id := range in.PayerAmounts {
		if err := check(id); err != nil {
			return err
		}
	}
	for id := range in.Splits {
		if err := check(id); err != nil {
			return err
		}
	}
	return nil
}

// AddExpense validates, builds, and stores a new expense on the trip.
func (s *ExpenseService) AddExpense(ctx context.Context, tripID string, in expense.Input) (*models.Expense, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	rate, err := s.resolveRate(ctx, trip, in.Currency, in.ExchangeRate)
	if err != nil {
		return nil, err
	}
	in.ExchangeRate = rate
	if in.Currency == "" {
		in.Currency = trip.TripCurrency
	}
	if err := checkParticipants(trip, in); err != nil {
		return nil, err
	}
	in.ID = "" // ids are never caller-chosen on create
	in.Order = trip.ParticipantIDs()

	e, err := expense.Build(in)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateExpense(ctx, tripID, e); err != nil {
		slog.Error("AddExpense failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	slog.Info("Expense added", "trip_id", tripID, "expense_id", e.ID,
		"amount", e.Amount, "tag", e.Tag)
	return e, nil
}

// UpdateExpense rebuilds an existing expense from new input, preserving
// its id.
func (s *ExpenseService) UpdateExpense(ctx context.Context, tripID, expenseID string, in expense.Input) (*models.Expense, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	rate, err := s.resolveRate(ctx, trip, in.Currency, in.ExchangeRate)
	if err != nil {
		return nil, err
	}
	in.ExchangeRate = rate
	if in.Currency == "" {
		in.Currency = trip.TripCurrency
	}
	if err := checkParticipants(trip, in); err != nil {
		return nil, err
	}
	in.ID = expenseID
	in.Order = trip.ParticipantIDs()

	e, err := expense.Build(in)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateExpense(ctx, tripID, e); err != nil {
		slog.Error("UpdateExpense failed", "trip_id", tripID, "expense_id", expenseID, "error", err)
		return nil, err
	}
	slog.Info("Expense updated", "trip_id", tripID, "expense_id", expenseID)
	return e, nil
}

// DeleteExpense removes one expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, tripID, expenseID); err != nil {
		return err
	}
	slog.Info("Expense deleted", "trip_id", tripID, "expense_id", expenseID)
	return nil
}

// TransferInput describes a direct payment between two participants,
// in the entry currency.
type TransferInput struct {
	FromID       string    `json:"from"`
	ToID         string    `json:"to"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency,omitempty"`
	ExchangeRate float64   `json:"exchangeRate,omitempty"`
	Date         time.Time `json:"date,omitempty"`
}

// AddTransfer records a person-to-person payment as a transfer expense.
func (s *ExpenseService) AddTransfer(ctx context.Context, tripID string, in TransferInput) (*models.Expense, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	from := trip.Participant(in.FromID)
	if from == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, in.FromID)
	}
	to := trip.Participant(in.ToID)
	if to == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, in.ToID)
	}

	rate, err := s.resolveRate(ctx, trip, in.Currency, in.ExchangeRate)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = trip.TripCurrency
	}

	e, err := expense.Transfer(*from, *to, in.Amount, rate, currency, in.Date)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateExpense(ctx, tripID, e); err != nil {
		slog.Error("AddTransfer failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	slog.Info("Transfer recorded", "trip_id", tripID, "expense_id", e.ID,
		"from", in.FromID, "to", in.ToID, "amount", e.Amount)
	return e, nil
}
