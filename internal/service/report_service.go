package service

import (
	"context"

	"github.com/mlafefon/split-trip/internal/calculator"
	"github.com/mlafefon/split-trip/internal/storage"
)

// ReportService computes balances, settlement plans, and spending
// statistics. Pure reads: it never mutates stored data.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a new ReportService.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// ParticipantBalance is one participant's net position in trip currency.
// Positive means the group owes them money.
type ParticipantBalance struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
}

// BalanceReport pairs the balances (in trip participant order) with the
// settlement plan that zeroes them.
type BalanceReport struct {
	Balances   []ParticipantBalance     `json:"balances"`
	Settlement []calculator.Transaction `json:"settlement"`
}

// Balances computes the trip's balance report.
func (s *ReportService) Balances(ctx context.Context, tripID string) (*BalanceReport, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Normalize()

	balances := calculator.Balances(trip)
	order := trip.ParticipantIDs()

	report := &BalanceReport{
		Balances:   make([]ParticipantBalance, 0, len(trip.Participants)),
		Settlement: calculator.Settle(balances, order),
	}
	for _, p := range trip.Participants {
		report.Balances = append(report.Balances, ParticipantBalance{
			ParticipantID: p.ID,
			Name:          p.Name,
			Amount:        balances[p.ID],
		})
	}
	return report, nil
}

// SpendingReport breaks total spending down by category and by payer.
// Transfers are excluded from the category view and the total.
type SpendingReport struct {
	Total      float64                    `json:"total"`
	Categories []calculator.CategoryTotal `json:"categories"`
	Payers     []calculator.PayerTotal    `json:"payers"`
}

// Spending computes the trip's spending report.
func (s *ReportService) Spending(ctx context.Context, tripID string) (*SpendingReport, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Normalize()

	categories := calculator.CategoryTotals(trip)
	var total float64
	for _, c := range categories {
		total += c.Amount
	}

	return &SpendingReport{
		Total:      total,
		Categories: categories,
		Payers:     calculator.PayerTotals(trip),
	}, nil
}
