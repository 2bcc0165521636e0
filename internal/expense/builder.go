// Package expense validates and materializes expense records. It is the
// only place expenses are constructed: all stored records satisfy the
// payer-sum and split-sum invariants the balance engine relies on.
package expense

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mlafefon/split-trip/internal/models"
)

const epsilon = 0.01

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Input describes one expense as entered, in the entry currency. The
// builder converts everything to trip currency via ExchangeRate.
//
// Exactly one payer mode applies: PayerAmounts when non-empty (multi-payer),
// otherwise PayerID (single payer for the full amount). Splits come from an
// allocation (equal, exact, or percentage) and are keyed by participant id,
// which makes double-listing a participant impossible.
type Input struct {
	ID           string // empty on create; preserved on edit
	Description  string
	Amount       float64
	Currency     string
	ExchangeRate float64
	Date         time.Time
	Tag          string
	Notes        string

	PayerID      string
	PayerAmounts map[string]float64
	Splits       map[string]float64

	// Order fixes how payers and splits are laid out in the record;
	// callers pass the trip's participant order. Ids not listed sort last.
	Order []string
}

// Build validates the input and produces a trip-currency expense record.
// Validation happens before anything is constructed; a failed build leaves
// no partial state anywhere.
func Build(in Input) (*models.Expense, error) {
	if in.Description == "" {
		return nil, ErrMissingDescription
	}
	if in.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if in.ExchangeRate <= 0 {
		return nil, ErrNonPositiveRate
	}
	if in.Tag == "" {
		return nil, ErrMissingCategory
	}

	payers, err := buildPayers(in)
	if err != nil {
		return nil, err
	}
	splits, err := buildSplits(in)
	if err != nil {
		return nil, err
	}

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &models.Expense{
		ID:               id,
		Description:      in.Description,
		Amount:           round2(in.Amount * in.ExchangeRate),
		Date:             date,
		Payers:           payers,
		Splits:           splits,
		Tag:              in.Tag,
		OriginalCurrency: in.Currency,
		ExchangeRate:     in.ExchangeRate,
		Notes:            in.Notes,
	}, nil
}

func buildPayers(in Input) ([]models.PayerShare, error) {
	if len(in.PayerAmounts) == 0 {
		if in.PayerID == "" {
			return nil, ErrMissingPayer
		}
		return []models.PayerShare{
			{ParticipantID: in.PayerID, Amount: round2(in.Amount * in.ExchangeRate)},
		}, nil
	}

	var paid float64
	contributions := make(map[string]float64, len(in.PayerAmounts))
	for id, v := range in.PayerAmounts {
		if v <= 0 {
			continue
		}
		paid += v
		contributions[id] = v
	}
	if math.Abs(paid-in.Amount) > epsilon {
		return nil, &PayerMismatchError{Expected: in.Amount, Actual: paid}
	}

	payers := make([]models.PayerShare, 0, len(contributions))
	for _, id := range orderedIDs(contributions, in.Order) {
		payers = append(payers, models.PayerShare{
			ParticipantID: id,
			Amount:        contributions[id] * in.ExchangeRate,
		})
	}
	return payers, nil
}

func buildSplits(in Input) ([]models.ExpenseSplit, error) {
	if len(in.Splits) == 0 {
		return nil, ErrNoBeneficiaries
	}

	var total float64
	for _, v := range in.Splits {
		total += v
	}
	if math.Abs(total-in.Amount) > epsilon {
		return nil, &SplitMismatchError{Expected: in.Amount, Actual: total}
	}

	splits := make([]models.ExpenseSplit, 0, len(in.Splits))
	for _, id := range orderedIDs(in.Splits, in.Order) {
		splits = append(splits, models.ExpenseSplit{
			ParticipantID: id,
			Amount:        in.Splits[id] * in.ExchangeRate,
		})
	}
	return splits, nil
}

// orderedIDs returns the keys of m following the given order, then any
// remaining keys sorted, so records are deterministic regardless of map
// iteration.
func orderedIDs(m map[string]float64, order []string) []string {
	ids := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, id := range order {
		if _, ok := m[id]; ok && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	var rest []string
	for id := range m {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

// Transfer materializes a direct person-to-person payment: a single payer
// and a single beneficiary, both for the full amount, tagged so statistics
// skip it while balances include it.
func Transfer(from, to models.Participant, amount, rate float64, currency string, date time.Time) (*models.Expense, error) {
	if from.ID == "" || to.ID == "" {
		return nil, ErrMissingPayer
	}
	if from.ID == to.ID {
		return nil, ErrSameParticipant
	}
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if rate <= 0 {
		return nil, ErrNonPositiveRate
	}

	if date.IsZero() {
		date = time.Now()
	}
	tripAmount := round2(amount * rate)

	return &models.Expense{
		ID:               uuid.New().String(),
		Description:      "Transfer from " + from.Name + " to " + to.Name,
		Amount:           tripAmount,
		Date:             date,
		Payers:           []models.PayerShare{{ParticipantID: from.ID, Amount: tripAmount}},
		Splits:           []models.ExpenseSplit{{ParticipantID: to.ID, Amount: tripAmount}},
		Tag:              models.TransferTag,
		OriginalCurrency: currency,
		ExchangeRate:     rate,
	}, nil
}
