package calculator

import (
	"sort"

	"github.com/mlafefon/split-trip/internal/models"
)

// UncategorizedTag groups expenses that carry no category tag in the
// spending breakdown.
const UncategorizedTag = "uncategorized"

// CategoryTotal is the spend recorded under one category tag.
type CategoryTotal struct {
	Tag    string  `json:"tag"`
	Amount float64 `json:"amount"`
}

// PayerTotal is the total one participant contributed across all expenses.
type PayerTotal struct {
	ParticipantID string  `json:"participantId"`
	Amount        float64 `json:"amount"`
}

// CategoryTotals sums expense amounts per category tag, largest first.
// Transfers are not spending and are skipped. Ties sort by tag name so
// the output is stable.
func CategoryTotals(trip *models.Trip) []CategoryTotal {
	totals := make(map[string]float64)
	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		if e.IsTransfer() {
			continue
		}
		tag := e.Tag
		if tag == "" {
			tag = UncategorizedTag
		}
		totals[tag] += e.Amount
	}

	out := make([]CategoryTotal, 0, len(totals))
	for tag, amount := range totals {
		out = append(out, CategoryTotal{Tag: tag, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// PayerTotals sums what each participant paid across all expenses,
// transfers included, largest first. Participants who paid nothing are
// omitted; ties keep trip participant order.
func PayerTotals(trip *models.Trip) []PayerTotal {
	var out []PayerTotal
	for _, p := range trip.Participants {
		var total float64
		for i := range trip.Expenses {
			for _, payer := range effectivePayers(&trip.Expenses[i]) {
				if payer.ParticipantID == p.ID {
					total += payer.Amount
				}
			}
		}
		if total > 0 {
			out = append(out, PayerTotal{ParticipantID: p.ID, Amount: total})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}
