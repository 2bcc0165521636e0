package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mlafefon/split-trip/internal/calculator"
	"github.com/mlafefon/split-trip/internal/service"
)

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Balances(r.Context(), mux.Vars(r)["tripID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Spending(r.Context(), mux.Vars(r)["tripID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// allocateRequest asks for a split preview. Mode selects which fields apply:
// "equal" uses participants, "exact" uses values, "percentage" uses
// percentages, "distribute" uses current, locked, and selected.
type allocateRequest struct {
	Mode         string             `json:"mode"`
	Total        float64            `json:"total"`
	Participants []string           `json:"participants,omitempty"`
	Values       map[string]float64 `json:"values,omitempty"`
	Percentages  map[string]float64 `json:"percentages,omitempty"`
	Current      map[string]float64 `json:"current,omitempty"`
	Locked       []string           `json:"locked,omitempty"`
	Selected     []string           `json:"selected,omitempty"`
}

type allocateResponse struct {
	Shares map[string]float64 `json:"shares"`
	Locked []string           `json:"locked,omitempty"`
}

func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	var resp allocateResponse
	var err error
	switch req.Mode {
	case "equal":
		resp.Shares, err = calculator.Equal(req.Total, req.Participants)
	case "exact":
		resp.Shares, err = calculator.Exact(req.Total, req.Values)
	case "percentage":
		resp.Shares, err = calculator.Percentage(req.Total, req.Percentages)
	case "distribute":
		resp.Shares, resp.Locked, err = calculator.DistributeRemaining(req.Total, req.Current, req.Locked, req.Selected)
	default:
		writeBadRequest(w, fmt.Errorf("unknown allocation mode %q", req.Mode))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		writeBadRequest(w, errors.New("missing base currency"))
		return
	}
	if s.rates == nil {
		writeError(w, fmt.Errorf("%w: no provider configured", service.ErrRateUnavailable))
		return
	}
	latest, err := s.rates.Latest(r.Context(), base)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", service.ErrRateUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"base": base, "rates": latest})
}
