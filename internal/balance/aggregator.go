package balance

import "sort"

// Compute folds same-currency entries and payments into one net balance per
// person: each payer is credited the full expense amount, each participant
// is debited their share, and recorded payments credit the sender and debit
// the receiver. The fold is associative and commutative, so the result does
// not depend on the order entries are processed in.
//
// People whose final position is within Epsilon of zero are considered
// settled and omitted. Output order is first-seen order (payer before
// shares, share IDs in ascending order per entry), which is deterministic
// for a given input ordering.
func Compute(currency string, entries []Entry, payments []Payment) []Balance {
	net := make(map[int64]float64)
	var order []int64

	touch := func(userID int64) {
		if _, seen := net[userID]; !seen {
			net[userID] = 0
			order = append(order, userID)
		}
	}

	for _, e := range entries {
		touch(e.PayerID)
		net[e.PayerID] += e.Amount

		// Sorted share iteration keeps the emission order stable; map
		// iteration order would leak into the output otherwise.
		ids := make([]int64, 0, len(e.Shares))
		for id := range e.Shares {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			touch(id)
			net[id] -= e.Shares[id]
		}
	}

	for _, p := range payments {
		touch(p.FromUserID)
		touch(p.ToUserID)
		net[p.FromUserID] += p.Amount
		net[p.ToUserID] -= p.Amount
	}

	balances := make([]Balance, 0, len(order))
	for _, userID := range order {
		rounded := roundTwo(net[userID])
		if rounded > -Epsilon && rounded < Epsilon {
			continue
		}
		balances = append(balances, Balance{
			UserID:   userID,
			Net:      rounded,
			Currency: currency,
		})
	}

	return balances
}

// ComputeBalances groups mixed-currency entries and payments by currency and
// aggregates each group independently. The flattened result keeps the
// per-currency grouping order.
func ComputeBalances(entries []Entry, payments []Payment) []Balance {
	var balances []Balance
	for _, g := range GroupByCurrency(entries, payments) {
		balances = append(balances, Compute(g.Currency, g.Entries, g.Payments)...)
	}
	return balances
}
