// Package models defines the core domain types for split-trip.
//
// # Models
//
//   - Trip: a group of people traveling together, with participants,
//     expenses, and a category registry
//   - Participant: one member of a trip, identified by an opaque id
//   - Expense: money spent by one or more payers, split among beneficiaries
//   - Category: a spending tag (food, transport, ...)
//
// All expense amounts are stored in the trip currency, the common ledger
// currency. An expense paid in another currency carries its original
// currency code and the exchange rate used at entry time.
//
// # Invariants
//
// For every stored expense:
//
//  1. sum(payers[].amount) == amount within 0.01
//  2. sum(splits[].amount) == amount within 0.01
//  3. payers and splits reference only participants of the owning trip,
//     each at most once per list
//  4. amount > 0
//
// The expense builder (internal/expense) enforces these at construction;
// the balance and settlement engine (internal/calculator) depends on them.
//
// # Legacy single payer
//
// Older records carried a single paidBy field instead of a payer list.
// Normalize converts the legacy shape at the data-model boundary so the
// rest of the system only ever sees the payer list.
package models
