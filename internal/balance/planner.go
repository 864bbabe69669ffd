package balance

import (
	"fmt"
	"sort"
	"strings"
)

// InvariantError reports a settlement plan that terminated with money left
// over on one side. For any closed set of expenses the balances sum to zero
// within Epsilon, so a leftover means the balances were corrupted upstream.
// The planner fails loud rather than emit a partial plan.
type InvariantError struct {
	Currency string
	Leftover []Balance
}

func (e *InvariantError) Error() string {
	parts := make([]string, len(e.Leftover))
	for i, b := range e.Leftover {
		parts[i] = fmt.Sprintf("user %d=%.2f", b.UserID, b.Net)
	}
	return fmt.Sprintf("unbalanced %s ledger after planning: %s", e.Currency, strings.Join(parts, ", "))
}

// party is one side of the greedy match with its remaining unsettled amount,
// always stored positive.
type party struct {
	userID int64
	amount float64
}

// Plan turns the balances for one currency into a list of suggested
// transfers that zeroes every position, by repeatedly matching the largest
// remaining creditor with the largest remaining debtor and transferring the
// smaller of the two amounts. Every match fully settles at least one party,
// so at most n-1 settlements come out of n non-zero balances.
//
// This is the standard greedy heuristic used by expense-splitting tools,
// not an optimal solver; minimizing the transaction count exactly is
// NP-hard in general.
func Plan(currency string, balances []Balance) ([]Settlement, error) {
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Net > Epsilon:
			creditors = append(creditors, party{userID: b.UserID, amount: b.Net})
		case b.Net < -Epsilon:
			debtors = append(debtors, party{userID: b.UserID, amount: -b.Net})
		}
	}

	// Largest amounts first; ties broken by user ID so the plan is
	// deterministic regardless of input order.
	byAmountDesc := func(parties []party) func(i, j int) bool {
		return func(i, j int) bool {
			if parties[i].amount != parties[j].amount {
				return parties[i].amount > parties[j].amount
			}
			return parties[i].userID < parties[j].userID
		}
	}
	sort.Slice(creditors, byAmountDesc(creditors))
	sort.Slice(debtors, byAmountDesc(debtors))

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		transfer := debtor.amount
		if creditor.amount < transfer {
			transfer = creditor.amount
		}

		if transfer > Epsilon {
			settlements = append(settlements, Settlement{
				FromUserID: debtor.userID,
				ToUserID:   creditor.userID,
				Amount:     roundTwo(transfer),
				Currency:   currency,
			})
		}

		debtor.amount -= transfer
		creditor.amount -= transfer

		if debtor.amount <= Epsilon {
			i++
		}
		if creditor.amount <= Epsilon {
			j++
		}
	}

	// Both sides must be exhausted; anything left violates conservation.
	var leftover []Balance
	for ; i < len(debtors); i++ {
		if debtors[i].amount > Epsilon {
			leftover = append(leftover, Balance{UserID: debtors[i].userID, Net: -debtors[i].amount, Currency: currency})
		}
	}
	for ; j < len(creditors); j++ {
		if creditors[j].amount > Epsilon {
			leftover = append(leftover, Balance{UserID: creditors[j].userID, Net: creditors[j].amount, Currency: currency})
		}
	}
	if len(leftover) > 0 {
		return nil, &InvariantError{Currency: currency, Leftover: leftover}
	}

	return settlements, nil
}

// PlanSettlements groups mixed-currency entries and payments by currency,
// aggregates each group, and plans each currency's settlements
// independently. Currencies are never mixed within one plan.
func PlanSettlements(entries []Entry, payments []Payment) ([]Settlement, error) {
	var settlements []Settlement
	for _, g := range GroupByCurrency(entries, payments) {
		planned, err := Plan(g.Currency, Compute(g.Currency, g.Entries, g.Payments))
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, planned...)
	}
	return settlements, nil
}
