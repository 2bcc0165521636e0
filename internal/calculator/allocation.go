// Package calculator implements the pure computation engine: monetary
// allocation, balance aggregation, debt settlement, and spending statistics.
// Everything here is a deterministic function over in-memory values; no I/O,
// no shared state.
package calculator

import "math"

// epsilon is the tolerance for all monetary sum comparisons.
const epsilon = 0.01

// round2 rounds to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// trunc2 truncates toward zero to 2 decimal places. The tiny nudge keeps
// exact cent values from being cut down by binary float representation
// (0.03/3 is slightly below 0.01 in float64).
func trunc2(x float64) float64 {
	return math.Trunc(x*100+math.Copysign(1e-9, x)) / 100
}

// Equal divides total evenly among ids. Each participant receives the
// truncated per-head base; the first id in the given order additionally
// absorbs the rounding remainder, so the shares sum to total exactly to
// the cent.
func Equal(total float64, ids []string) (map[string]float64, error) {
	if len(ids) == 0 {
		return nil, ErrNoParticipants
	}
	if total <= 0 {
		return nil, ErrNonPositiveAmount
	}

	shares := make(map[string]float64, len(ids))
	spread(total, ids, shares)
	return shares, nil
}

// spread assigns an equal allocation of total to ids, first id absorbing
// the remainder. Shared by Equal and DistributeRemaining; total may be
// negative here (over-locked redistribution).
func spread(total float64, ids []string, shares map[string]float64) {
	count := float64(len(ids))
	base := trunc2(total / count)
	remainder := round2(total - base*count)

	for i, id := range ids {
		if i == 0 {
			shares[id] = round2(base + remainder)
		} else {
			shares[id] = base
		}
	}
}

// Exact passes caller-supplied shares through after checking they sum to
// total within epsilon. Negative individual shares are allowed (debt-like
// adjustments); only the sum is constrained.
func Exact(total float64, raw map[string]float64) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, ErrNoParticipants
	}
	if total <= 0 {
		return nil, ErrNonPositiveAmount
	}

	var sum float64
	for _, v := range raw {
		sum += v
	}
	if math.Abs(sum-total) > epsilon {
		return nil, &ValidationError{What: "exact amounts", Expected: total, Actual: sum}
	}

	shares := make(map[string]float64, len(raw))
	for id, v := range raw {
		shares[id] = v
	}
	return shares, nil
}

// Percentage converts per-participant percentages into shares of total.
// The percentages must sum to 100 within epsilon.
func Percentage(total float64, percents map[string]float64) (map[string]float64, error) {
	if len(percents) == 0 {
		return nil, ErrNoParticipants
	}
	if total <= 0 {
		return nil, ErrNonPositiveAmount
	}

	var sum float64
	for _, p := range percents {
		sum += p
	}
	if math.Abs(sum-100) > epsilon {
		return nil, &ValidationError{What: "percentages", Expected: 100, Actual: sum}
	}

	shares := make(map[string]float64, len(percents))
	for id, p := range percents {
		shares[id] = p / 100 * total
	}
	return shares, nil
}

// DistributeRemaining recomputes shares while a caller is manually
// overriding some of them. Ids in lockedIDs keep their value from current;
// the rest of selectedIDs (the auto pool) receive an equal allocation of
// whatever total is left, with the first auto id in selected order
// absorbing the rounding remainder.
//
// If every selected id is locked the earliest-locked id is released back
// to the auto pool, so there is always at least one share left to
// rebalance. The possibly trimmed locked list is returned; the caller owns
// lock state between calls.
func DistributeRemaining(total float64, current map[string]float64, lockedIDs, selectedIDs []string) (map[string]float64, []string, error) {
	if len(selectedIDs) == 0 {
		return nil, nil, ErrNoParticipants
	}
	if total <= 0 {
		return nil, nil, ErrNonPositiveAmount
	}

	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	// Only locks on selected participants count.
	locked := make([]string, 0, len(lockedIDs))
	for _, id := range lockedIDs {
		if selected[id] {
			locked = append(locked, id)
		}
	}
	if len(locked) == len(selectedIDs) {
		locked = locked[1:]
	}

	lockedSet := make(map[string]bool, len(locked))
	var lockedSum float64
	for _, id := range locked {
		lockedSet[id] = true
		lockedSum += current[id]
	}

	auto := make([]string, 0, len(selectedIDs)-len(locked))
	for _, id := range selectedIDs {
		if !lockedSet[id] {
			auto = append(auto, id)
		}
	}

	shares := make(map[string]float64, len(selectedIDs))
	for _, id := range locked {
		shares[id] = current[id]
	}
	spread(total-lockedSum, auto, shares)

	return shares, locked, nil
}
