package calculator

import (
	"math"
	"reflect"
	"testing"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]float64
		order    []string
		want     []Transaction
	}{
		{
			name:     "two equal debtors pay one creditor",
			balances: map[string]float64{"alice": 60, "bob": -30, "carol": -30},
			order:    []string{"alice", "bob", "carol"},
			want: []Transaction{
				{From: "bob", To: "alice", Amount: 30},
				{From: "carol", To: "alice", Amount: 30},
			},
		},
		{
			name:     "settled participant is skipped",
			balances: map[string]float64{"alice": 50, "bob": 0, "carol": -50},
			order:    []string{"alice", "bob", "carol"},
			want: []Transaction{
				{From: "carol", To: "alice", Amount: 50},
			},
		},
		{
			name:     "largest debtor matched against largest creditor first",
			balances: map[string]float64{"a": 10, "b": 70, "c": -50, "d": -30},
			order:    []string{"a", "b", "c", "d"},
			want: []Transaction{
				{From: "c", To: "b", Amount: 50},
				{From: "d", To: "b", Amount: 20},
				{From: "d", To: "a", Amount: 10},
			},
		},
		{
			name:     "ties keep balance-map iteration order",
			balances: map[string]float64{"a": 20, "b": 20, "c": -20, "d": -20},
			order:    []string{"a", "b", "c", "d"},
			want: []Transaction{
				{From: "c", To: "a", Amount: 20},
				{From: "d", To: "b", Amount: 20},
			},
		},
		{
			name:     "all zero returns empty plan",
			balances: map[string]float64{"a": 0, "b": 0.005, "c": -0.005},
			order:    []string{"a", "b", "c"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.balances, tt.order)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Settle() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Applying the plan must drive every balance to within epsilon of zero,
// in at most debtors+creditors-1 transactions.
func TestSettleCorrectness(t *testing.T) {
	cases := []struct {
		name     string
		balances map[string]float64
		order    []string
	}{
		{
			name:     "uneven amounts",
			balances: map[string]float64{"a": 33.34, "b": -33.33, "c": 45.55, "d": -45.56},
			order:    []string{"a", "b", "c", "d"},
		},
		{
			name:     "one big creditor",
			balances: map[string]float64{"a": 100, "b": -10, "c": -20, "d": -30, "e": -40},
			order:    []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "float dust near zero",
			balances: map[string]float64{"a": 0.009, "b": -0.009, "c": 12.5, "d": -12.5},
			order:    []string{"a", "b", "c", "d"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adjusted := make(map[string]float64, len(tc.balances))
			debtors, creditors := 0, 0
			for id, v := range tc.balances {
				adjusted[id] = v
				if v < -0.01 {
					debtors++
				} else if v > 0.01 {
					creditors++
				}
			}

			plan := Settle(tc.balances, tc.order)

			if max := debtors + creditors - 1; len(plan) > max {
				t.Errorf("plan has %d transactions, want at most %d", len(plan), max)
			}
			for _, tx := range plan {
				if tx.Amount <= 0 {
					t.Errorf("transaction %+v has non-positive amount", tx)
				}
				adjusted[tx.From] += tx.Amount
				adjusted[tx.To] -= tx.Amount
			}
			for id, v := range adjusted {
				if math.Abs(v) > 0.011 {
					t.Errorf("balance[%s] = %v after settling, want ~0", id, v)
				}
			}
		})
	}
}

func TestSettleIDsOutsideOrder(t *testing.T) {
	// Ids missing from the order slice still settle, appended in sorted order.
	got := Settle(map[string]float64{"z": -10, "a": 10}, nil)
	want := []Transaction{{From: "z", To: "a", Amount: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Settle() = %v, want %v", got, want)
	}
}
