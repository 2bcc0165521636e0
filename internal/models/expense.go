package models

import "time"

// TransferTag marks a direct person-to-person payment. Transfers count
// toward balances but are excluded from category spending statistics.
const TransferTag = "transfer"

// PayerShare records how much one participant contributed toward an
// expense, in trip currency.
type PayerShare struct {
	ParticipantID string  `json:"participantId"`
	Amount        float64 `json:"amount"`
}

// ExpenseSplit records how much of an expense one participant owes,
// in trip currency.
type ExpenseSplit struct {
	ParticipantID string  `json:"participantId"`
	Amount        float64 `json:"amount"`
}

// Expense is money spent by one or more payers and split among one or
// more beneficiaries. Amount and all shares are in trip currency.
type Expense struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Date        time.Time      `json:"date"`
	Payers      []PayerShare   `json:"payers"`
	Splits      []ExpenseSplit `json:"splits"`
	Tag         string         `json:"tag"`

	// OriginalCurrency and ExchangeRate record how the amount was entered:
	// amount_in_original_currency * ExchangeRate == Amount.
	OriginalCurrency string  `json:"originalCurrency,omitempty"`
	ExchangeRate     float64 `json:"exchangeRate,omitempty"`

	Notes string `json:"notes,omitempty"`

	// PaidBy is the legacy single-payer field. It survives only in stored
	// records written before multi-payer support; Normalize folds it into
	// Payers.
	PaidBy string `json:"paidBy,omitempty"`
}

// Normalize converts a legacy single-payer record into the payer-list
// shape. Safe to call repeatedly.
func (e *Expense) Normalize() {
	if len(e.Payers) == 0 && e.PaidBy != "" {
		e.Payers = []PayerShare{{ParticipantID: e.PaidBy, Amount: e.Amount}}
	}
	e.PaidBy = ""
}

// IsTransfer reports whether this expense models a direct transfer.
func (e *Expense) IsTransfer() bool {
	return e.Tag == TransferTag
}
