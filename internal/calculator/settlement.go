package calculator

import "sort"

// Transaction is one settling payment: From (debtor) pays To (creditor)
// Amount in trip currency.
type Transaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// party tracks a debtor's or creditor's remaining amount, always positive.
type party struct {
	id     string
	amount float64
}

// Settle produces the list of transactions that drives every balance to
// within epsilon of zero. order fixes the iteration over the balance map
// (callers pass the trip's participant order), which together with the
// stable sorts makes the output deterministic.
//
// Greedy largest-vs-largest matching: debtors and creditors are each
// sorted descending by amount and walked with two pointers, transferring
// min(debtor remaining, creditor remaining) at each step. This always
// terminates in at most debtors+creditors-1 transactions; it is not
// guaranteed to be the theoretical minimum in multi-way-tie cases.
func Settle(balances map[string]float64, order []string) []Transaction {
	var debtors, creditors []party

	seen := make(map[string]bool, len(order))
	for _, id := range order {
		amount, ok := balances[id]
		if !ok {
			continue
		}
		seen[id] = true
		switch {
		case amount < -epsilon:
			debtors = append(debtors, party{id: id, amount: -amount})
		case amount > epsilon:
			creditors = append(creditors, party{id: id, amount: amount})
		}
	}

	// Balances outside the given order still have to be settled; append
	// them in sorted id order to keep the result deterministic.
	var rest []string
	for id := range balances {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		amount := balances[id]
		switch {
		case amount < -epsilon:
			debtors = append(debtors, party{id: id, amount: -amount})
		case amount > epsilon:
			creditors = append(creditors, party{id: id, amount: amount})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })

	var transactions []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		transactions = append(transactions, Transaction{
			From:   debtor.id,
			To:     creditor.id,
			Amount: round2(amount),
		})

		debtor.amount -= amount
		creditor.amount -= amount

		if debtor.amount < epsilon {
			i++
		}
		if creditor.amount < epsilon {
			j++
		}
	}

	return transactions
}
