package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mlafefon/split-trip/internal/calculator"
	"github.com/mlafefon/split-trip/internal/expense"
	"github.com/mlafefon/split-trip/internal/service"
	"github.com/mlafefon/split-trip/internal/storage"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Expected *float64 `json:"expected,omitempty"`
	Actual   *float64 `json:"actual,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Response encoding failed", "error", err)
		}
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// badInput lists the sentinel errors that mean the caller sent bad data.
var badInput = []error{
	service.ErrInvalidTrip,
	service.ErrUnknownParticipant,
	calculator.ErrNoParticipants,
	calculator.ErrNonPositiveAmount,
	expense.ErrNonPositiveAmount,
	expense.ErrNonPositiveRate,
	expense.ErrMissingDescription,
	expense.ErrMissingCategory,
	expense.ErrMissingPayer,
	expense.ErrNoBeneficiaries,
	expense.ErrSameParticipant,
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrParticipantInUse):
		return http.StatusConflict
	case errors.Is(err, service.ErrRateUnavailable):
		return http.StatusBadGateway
	}

	for _, sentinel := range badInput {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}

	var (
		validationErr *calculator.ValidationError
		payerErr      *expense.PayerMismatchError
		splitErr      *expense.SplitMismatchError
	)
	if errors.As(err, &validationErr) || errors.As(err, &payerErr) || errors.As(err, &splitErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request handling failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	resp := errorResponse{Error: err.Error()}
	var (
		validationErr *calculator.ValidationError
		payerErr      *expense.PayerMismatchError
		splitErr      *expense.SplitMismatchError
	)
	switch {
	case errors.As(err, &validationErr):
		resp.Expected, resp.Actual = &validationErr.Expected, &validationErr.Actual
	case errors.As(err, &payerErr):
		resp.Expected, resp.Actual = &payerErr.Expected, &payerErr.Actual
	case errors.As(err, &splitErr):
		resp.Expected, resp.Actual = &splitErr.Expected, &splitErr.Actual
	}
	writeJSON(w, status, resp)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
