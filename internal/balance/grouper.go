package balance

// CurrencyGroup holds the entries and payments for a single currency.
// Balances are not fungible across currencies, so each group is aggregated
// and planned independently; cross-currency conversion is display-only and
// happens in the caller, never here.
type CurrencyGroup struct {
	Currency string
	Entries  []Entry
	Payments []Payment
}

// GroupByCurrency partitions entries and payments into per-currency groups.
// Groups come back in first-seen order, which keeps the overall output
// deterministic for a given input ordering.
func GroupByCurrency(entries []Entry, payments []Payment) []CurrencyGroup {
	index := make(map[string]int)
	var groups []CurrencyGroup

	at := func(currency string) int {
		if i, ok := index[currency]; ok {
			return i
		}
		index[currency] = len(groups)
		groups = append(groups, CurrencyGroup{Currency: currency})
		return len(groups) - 1
	}

	for _, e := range entries {
		i := at(e.Currency)
		groups[i].Entries = append(groups[i].Entries, e)
	}
	for _, p := range payments {
		i := at(p.Currency)
		groups[i].Payments = append(groups[i].Payments, p)
	}

	return groups
}
