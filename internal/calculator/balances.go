package calculator

import "github.com/mlafefon/split-trip/internal/models"

// effectivePayers returns the payer list for an expense, synthesizing one
// from the legacy single-payer field when needed, without mutating the
// expense.
func effectivePayers(e *models.Expense) []models.PayerShare {
	if len(e.Payers) > 0 {
		return e.Payers
	}
	if e.PaidBy != "" {
		return []models.PayerShare{{ParticipantID: e.PaidBy, Amount: e.Amount}}
	}
	return nil
}

// Balances folds the trip's expenses into one net balance per participant,
// in trip currency. Positive means the group owes the participant money;
// negative means the participant owes the group. Participants not touched
// by any expense stay at 0, and shares referencing ids outside the trip
// are ignored.
//
// Addition is commutative, so the result does not depend on expense order;
// for any valid expense list the balances sum to zero within epsilon.
func Balances(trip *models.Trip) map[string]float64 {
	balances := make(map[string]float64, len(trip.Participants))
	for _, p := range trip.Participants {
		balances[p.ID] = 0
	}

	for i := range trip.Expenses {
		e := &trip.Expenses[i]

		for _, payer := range effectivePayers(e) {
			if _, ok := balances[payer.ParticipantID]; ok {
				balances[payer.ParticipantID] += payer.Amount
			}
		}
		for _, split := range e.Splits {
			if _, ok := balances[split.ParticipantID]; ok {
				balances[split.ParticipantID] -= split.Amount
			}
		}
	}

	return balances
}
