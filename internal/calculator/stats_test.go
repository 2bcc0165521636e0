package calculator

import (
	"math"
	"reflect"
	"testing"

	"github.com/mlafefon/split-trip/internal/models"
)

func TestCategoryTotals(t *testing.T) {
	trip := tripWith(
		models.Expense{Amount: 80, Tag: "food"},
		models.Expense{Amount: 20, Tag: "food"},
		models.Expense{Amount: 45, Tag: "transport"},
		models.Expense{Amount: 12},
		models.Expense{
			Amount: 500,
			Tag:    models.TransferTag,
			Payers: []models.PayerShare{{ParticipantID: "alice", Amount: 500}},
			Splits: []models.ExpenseSplit{{ParticipantID: "bob", Amount: 500}},
		},
	)

	got := CategoryTotals(trip)
	want := []CategoryTotal{
		{Tag: "food", Amount: 100},
		{Tag: "transport", Amount: 45},
		{Tag: UncategorizedTag, Amount: 12},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryTotals() = %v, want %v", got, want)
	}
}

func TestPayerTotals(t *testing.T) {
	trip := tripWith(
		models.Expense{
			Amount: 100,
			Payers: []models.PayerShare{
				{ParticipantID: "alice", Amount: 60},
				{ParticipantID: "bob", Amount: 40},
			},
		},
		models.Expense{Amount: 30, PaidBy: "bob"},
	)

	got := PayerTotals(trip)
	if len(got) != 2 {
		t.Fatalf("PayerTotals() returned %d entries, want 2", len(got))
	}
	// bob paid 70 total and sorts first; carol paid nothing and is omitted.
	if got[0].ParticipantID != "bob" || math.Abs(got[0].Amount-70) > 0.01 {
		t.Errorf("first = %+v, want bob 70", got[0])
	}
	if got[1].ParticipantID != "alice" || math.Abs(got[1].Amount-60) > 0.01 {
		t.Errorf("second = %+v, want alice 60", got[1])
	}
}
