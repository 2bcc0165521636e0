package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mlafefon/split-trip/internal/expense"
	"github.com/mlafefon/split-trip/internal/service"
)

// expenseRequest is the wire form of an expense entry. Single-payer entries
// set paidBy; multi-payer entries list per-payer amounts instead.
type expenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency,omitempty"`
	ExchangeRate float64            `json:"exchangeRate,omitempty"`
	Date         time.Time          `json:"date,omitempty"`
	Tag          string             `json:"tag"`
	Notes        string             `json:"notes,omitempty"`
	PayerID      string             `json:"paidBy,omitempty"`
	PayerAmounts map[string]float64 `json:"payers,omitempty"`
	Splits       map[string]float64 `json:"splits"`
}

func (req expenseRequest) input() expense.Input {
	return expense.Input{
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		ExchangeRate: req.ExchangeRate,
		Date:         req.Date,
		Tag:          req.Tag,
		Notes:        req.Notes,
		PayerID:      req.PayerID,
		PayerAmounts: req.PayerAmounts,
		Splits:       req.Splits,
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.expenses.AddExpense(r.Context(), mux.Vars(r)["tripID"], req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	vars := mux.Vars(r)
	updated, err := s.expenses.UpdateExpense(r.Context(), vars["tripID"], vars["expenseID"], req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.expenses.DeleteExpense(r.Context(), vars["tripID"], vars["expenseID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTransfer(w http.ResponseWriter, r *http.Request) {
	var req service.TransferInput
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.expenses.AddTransfer(r.Context(), mux.Vars(r)["tripID"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
