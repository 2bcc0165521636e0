package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlafefon/split-trip/internal/calculator"
	"github.com/mlafefon/split-trip/internal/expense"
	"github.com/mlafefon/split-trip/internal/models"
	"github.com/mlafefon/split-trip/internal/storage"
	"github.com/mlafefon/split-trip/internal/storage/sqlite"
)

// fakeProvider returns canned rates or an error.
type fakeProvider struct {
	rates map[string]float64
	err   error
}

func (f *fakeProvider) Latest(ctx context.Context, base string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestTrip(t *testing.T, trips *TripService) *models.Trip {
	t.Helper()
	trip, err := trips.CreateTrip(context.Background(), &models.Trip{
		Destination:  "Lisbon",
		BaseCurrency: "USD",
		TripCurrency: "EUR",
		Participants: []models.Participant{
			{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"},
		},
	})
	require.NoError(t, err)
	return trip
}

func TestTripService(t *testing.T) {
	store := newTestStore(t)
	trips := NewTripService(store)
	expenses := NewExpenseService(store, nil)
	ctx := context.Background()

	t.Run("new trip gets default categories", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		assert.Len(t, trip.Categories, len(models.DefaultCategories()))
	})

	t.Run("trip validation", func(t *testing.T) {
		_, err := trips.CreateTrip(ctx, &models.Trip{Destination: "Nowhere"})
		assert.ErrorIs(t, err, ErrInvalidTrip)

		_, err = trips.CreateTrip(ctx, &models.Trip{
			Participants: []models.Participant{{Name: "Solo"}},
		})
		assert.ErrorIs(t, err, ErrInvalidTrip)
	})

	t.Run("rename keeps participant ids", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		trip.Participants[0].Name = "Alicia"
		updated, err := trips.UpdateTrip(ctx, trip)
		require.NoError(t, err)
		assert.Equal(t, trip.Participants[0].ID, updated.Participants[0].ID)
		assert.Equal(t, "Alicia", updated.Participants[0].Name)
	})

	t.Run("removing a referenced participant is rejected", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice := trip.Participants[0].ID

		_, err := expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Dinner",
			Amount:      90,
			Tag:         "food",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 90},
		})
		require.NoError(t, err)

		trip.Participants = trip.Participants[1:] // drop alice
		_, err = trips.UpdateTrip(ctx, trip)
		assert.ErrorIs(t, err, ErrParticipantInUse)
	})

	t.Run("removing an unreferenced participant works", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		trip.Participants = trip.Participants[:2]
		updated, err := trips.UpdateTrip(ctx, trip)
		require.NoError(t, err)
		assert.Len(t, updated.Participants, 2)
	})

	t.Run("category registry update", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		updated, err := trips.UpdateCategories(ctx, trip.ID, []models.Category{
			{Name: "Ski passes", Icon: "Ticket", Color: "#123456"},
		})
		require.NoError(t, err)
		require.Len(t, updated.Categories, 1)
		assert.Equal(t, "Ski passes", updated.Categories[0].Name)
	})
}

func TestExpenseService(t *testing.T) {
	store := newTestStore(t)
	trips := NewTripService(store)
	expenses := NewExpenseService(store, nil)
	reports := NewReportService(store)
	ctx := context.Background()

	t.Run("equal split produces pinned balances and settlement", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice, bob, carol := trip.Participants[0].ID, trip.Participants[1].ID, trip.Participants[2].ID

		splits, err := calculator.Equal(90, trip.ParticipantIDs())
		require.NoError(t, err)

		_, err = expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Dinner",
			Amount:      90,
			Tag:         "food",
			PayerID:     alice,
			Splits:      splits,
		})
		require.NoError(t, err)

		report, err := reports.Balances(ctx, trip.ID)
		require.NoError(t, err)

		want := map[string]float64{alice: 60, bob: -30, carol: -30}
		for _, b := range report.Balances {
			assert.InDelta(t, want[b.ParticipantID], b.Amount, 0.01, b.Name)
		}
		require.Len(t, report.Settlement, 2)
		assert.Equal(t, calculator.Transaction{From: bob, To: alice, Amount: 30}, report.Settlement[0])
		assert.Equal(t, calculator.Transaction{From: carol, To: alice, Amount: 30}, report.Settlement[1])
	})

	t.Run("exact split mismatch carries both sums", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice, bob := trip.Participants[0].ID, trip.Participants[1].ID

		_, err := expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Groceries",
			Amount:      100,
			Tag:         "food",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 40, bob: 40},
		})
		var serr *expense.SplitMismatchError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 100.0, serr.Expected)
		assert.InDelta(t, 80.0, serr.Actual, 0.001)
	})

	t.Run("unknown participant rejected", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		_, err := expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Dinner",
			Amount:      10,
			Tag:         "food",
			PayerID:     "mallory",
			Splits:      map[string]float64{trip.Participants[0].ID: 10},
		})
		assert.ErrorIs(t, err, ErrUnknownParticipant)
	})

	t.Run("same currency defaults to rate 1", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice := trip.Participants[0].ID
		e, err := expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Coffee",
			Amount:      3.5,
			Currency:    "EUR",
			Tag:         "food",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 3.5},
		})
		require.NoError(t, err)
		assert.Equal(t, 1.0, e.ExchangeRate)
		assert.InDelta(t, 3.5, e.Amount, 0.001)
	})

	t.Run("cross currency without rate or provider fails", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice := trip.Participants[0].ID
		_, err := expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Sushi",
			Amount:      1000,
			Currency:    "JPY",
			Tag:         "food",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 1000},
		})
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("provider supplies the missing rate", func(t *testing.T) {
		withRates := NewExpenseService(store, &fakeProvider{rates: map[string]float64{"EUR": 0.25}})
		trip := createTestTrip(t, trips)
		alice := trip.Participants[0].ID

		e, err := withRates.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Street food",
			Amount:      100, // ILS
			Currency:    "ILS",
			Tag:         "food",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 100},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.25, e.ExchangeRate)
		assert.InDelta(t, 25, e.Amount, 0.001)
	})

	t.Run("provider failure surfaces as rate unavailable", func(t *testing.T) {
		broken := NewExpenseService(store, &fakeProvider{err: errors.New("boom")})
		trip := createTestTrip(t, trips)
		alice := trip.Participants[0].ID

		_, err := broken.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Tapas",
			Amount:      40,
			Currency:    "USD",
			Tag:         "food",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 40},
		})
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("update rebuilds the record under the same id", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice, bob := trip.Participants[0].ID, trip.Participants[1].ID

		e, err := expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Museum",
			Amount:      30,
			Tag:         "attractions",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 15, bob: 15},
		})
		require.NoError(t, err)

		updated, err := expenses.UpdateExpense(ctx, trip.ID, e.ID, expense.Input{
			Description: "Museum and gallery",
			Amount:      50,
			Tag:         "attractions",
			PayerID:     bob,
			Splits:      map[string]float64{alice: 25, bob: 25},
		})
		require.NoError(t, err)
		assert.Equal(t, e.ID, updated.ID)

		got, err := trips.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, got.Expenses, 1)
		assert.Equal(t, "Museum and gallery", got.Expenses[0].Description)
		assert.InDelta(t, 50, got.Expenses[0].Amount, 0.001)
	})

	t.Run("transfer settles debt and is excluded from spending", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice, bob, carol := trip.Participants[0].ID, trip.Participants[1].ID, trip.Participants[2].ID

		splits, err := calculator.Equal(90, trip.ParticipantIDs())
		require.NoError(t, err)
		_, err = expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Dinner",
			Amount:      90,
			Tag:         "food",
			PayerID:     alice,
			Splits:      splits,
		})
		require.NoError(t, err)

		_, err = expenses.AddTransfer(ctx, trip.ID, TransferInput{FromID: bob, ToID: alice, Amount: 30})
		require.NoError(t, err)

		report, err := reports.Balances(ctx, trip.ID)
		require.NoError(t, err)
		balances := make(map[string]float64)
		for _, b := range report.Balances {
			balances[b.ParticipantID] = b.Amount
		}
		assert.InDelta(t, 30, balances[alice], 0.01)
		assert.InDelta(t, 0, balances[bob], 0.01)
		assert.InDelta(t, -30, balances[carol], 0.01)
		require.Len(t, report.Settlement, 1)
		assert.Equal(t, carol, report.Settlement[0].From)
		assert.Equal(t, alice, report.Settlement[0].To)

		spending, err := reports.Spending(ctx, trip.ID)
		require.NoError(t, err)
		assert.InDelta(t, 90, spending.Total, 0.01)
		require.Len(t, spending.Categories, 1)
		assert.Equal(t, "food", spending.Categories[0].Tag)
	})

	t.Run("self transfer rejected", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice := trip.Participants[0].ID
		_, err := expenses.AddTransfer(ctx, trip.ID, TransferInput{FromID: alice, ToID: alice, Amount: 10})
		assert.ErrorIs(t, err, expense.ErrSameParticipant)
	})

	t.Run("delete expense restores balances", func(t *testing.T) {
		trip := createTestTrip(t, trips)
		alice := trip.Participants[0].ID
		e, err := expenses.AddExpense(ctx, trip.ID, expense.Input{
			Description: "Taxi",
			Amount:      20,
			Tag:         "transport",
			PayerID:     alice,
			Splits:      map[string]float64{alice: 20},
		})
		require.NoError(t, err)
		require.NoError(t, expenses.DeleteExpense(ctx, trip.ID, e.ID))

		report, err := reports.Balances(ctx, trip.ID)
		require.NoError(t, err)
		for _, b := range report.Balances {
			assert.True(t, math.Abs(b.Amount) < 0.01)
		}
		assert.Empty(t, report.Settlement)
	})
}
