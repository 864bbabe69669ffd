package balance

import (
	"math"
	"math/rand"
	"testing"
)

const (
	alice int64 = 1
	bob   int64 = 2
	carol int64 = 3
	dave  int64 = 4
)

func TestComputeSingleExpense(t *testing.T) {
	entries := []Entry{
		{
			PayerID:  alice,
			Amount:   100,
			Currency: "CAD",
			Shares:   map[int64]float64{alice: 50, bob: 50},
		},
	}

	balances := Compute("CAD", entries, nil)

	want := map[int64]float64{alice: 50, bob: -50}
	if len(balances) != len(want) {
		t.Fatalf("Compute() returned %d balances, want %d", len(balances), len(want))
	}
	for _, b := range balances {
		if math.Abs(b.Net-want[b.UserID]) > 0.001 {
			t.Errorf("user %d net = %v, want %v", b.UserID, b.Net, want[b.UserID])
		}
		if b.Currency != "CAD" {
			t.Errorf("user %d currency = %s, want CAD", b.UserID, b.Currency)
		}
	}
}

func TestComputeSelfPaidExpenseIsSettled(t *testing.T) {
	entries := []Entry{
		{
			PayerID:  alice,
			Amount:   25,
			Currency: "CAD",
			Shares:   map[int64]float64{alice: 25},
		},
	}

	if balances := Compute("CAD", entries, nil); len(balances) != 0 {
		t.Errorf("Compute() = %v, want no balances for a self-paid expense", balances)
	}
}

func TestComputeConservation(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 90, Currency: "CAD", Shares: map[int64]float64{alice: 30, bob: 30, carol: 30}},
		{PayerID: bob, Amount: 60, Currency: "CAD", Shares: map[int64]float64{alice: 20, bob: 20, carol: 20}},
		{PayerID: carol, Amount: 33.33, Currency: "CAD", Shares: map[int64]float64{alice: 11.11, bob: 11.11, carol: 11.11}},
	}

	var sum float64
	for _, b := range Compute("CAD", entries, nil) {
		sum += b.Net
	}

	// Total paid equals total owed, so nets cancel.
	if math.Abs(sum) > Epsilon {
		t.Errorf("balances sum to %v, want 0 within %v", sum, Epsilon)
	}
}

// Two distinct users sharing a display name are still two ledger positions;
// identity is the user ID, so same-named members never merge.
func TestComputeSameNameDistinctUsers(t *testing.T) {
	// Users 1 and 4 are both called "Alice" upstream. User 1 paid 90,
	// split three ways with user 4 and Bob.
	entries := []Entry{
		{PayerID: 1, Amount: 90, Currency: "CAD", Shares: map[int64]float64{1: 30, 4: 30, bob: 30}},
	}

	balances := Compute("CAD", entries, nil)

	want := map[int64]float64{1: 60, 4: -30, bob: -30}
	if len(balances) != len(want) {
		t.Fatalf("Compute() returned %d balances, want %d: %v", len(balances), len(want), balances)
	}
	var sum float64
	for _, b := range balances {
		if math.Abs(b.Net-want[b.UserID]) > 0.001 {
			t.Errorf("user %d net = %v, want %v", b.UserID, b.Net, want[b.UserID])
		}
		sum += b.Net
	}
	if math.Abs(sum) > Epsilon {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 90, Currency: "CAD", Shares: map[int64]float64{alice: 30, bob: 30, carol: 30}},
		{PayerID: bob, Amount: 60, Currency: "CAD", Shares: map[int64]float64{alice: 20, bob: 20, carol: 20}},
		{PayerID: carol, Amount: 45.5, Currency: "CAD", Shares: map[int64]float64{bob: 20.25, carol: 25.25}},
		{PayerID: dave, Amount: 12, Currency: "CAD", Shares: map[int64]float64{alice: 6, dave: 6}},
	}

	asMap := func(balances []Balance) map[int64]float64 {
		m := make(map[int64]float64, len(balances))
		for _, b := range balances {
			m[b.UserID] = b.Net
		}
		return m
	}

	want := asMap(Compute("CAD", entries, nil))

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Entry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := asMap(Compute("CAD", shuffled, nil))
		if len(got) != len(want) {
			t.Fatalf("trial %d: got %d balances, want %d", trial, len(got), len(want))
		}
		for userID, net := range want {
			if math.Abs(got[userID]-net) > 0.001 {
				t.Errorf("trial %d: user %d net = %v, want %v", trial, userID, got[userID], net)
			}
		}
	}
}

func TestComputePaymentsClearDebt(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 100, Currency: "CAD", Shares: map[int64]float64{alice: 50, bob: 50}},
	}
	payments := []Payment{
		{FromUserID: bob, ToUserID: alice, Amount: 50, Currency: "CAD"},
	}

	if balances := Compute("CAD", entries, payments); len(balances) != 0 {
		t.Errorf("Compute() = %v, want no balances after Bob settles up", balances)
	}
}

func TestGroupByCurrencyKeepsCurrenciesApart(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 100, Currency: "CAD", Shares: map[int64]float64{alice: 50, bob: 50}},
		{PayerID: bob, Amount: 40, Currency: "USD", Shares: map[int64]float64{alice: 20, bob: 20}},
		{PayerID: carol, Amount: 30, Currency: "CAD", Shares: map[int64]float64{bob: 15, carol: 15}},
	}
	payments := []Payment{
		{FromUserID: alice, ToUserID: bob, Amount: 20, Currency: "USD"},
	}

	groups := GroupByCurrency(entries, payments)
	if len(groups) != 2 {
		t.Fatalf("GroupByCurrency() returned %d groups, want 2", len(groups))
	}

	// First-seen order: CAD before USD.
	if groups[0].Currency != "CAD" || groups[1].Currency != "USD" {
		t.Fatalf("group order = [%s %s], want [CAD USD]", groups[0].Currency, groups[1].Currency)
	}
	if len(groups[0].Entries) != 2 || len(groups[0].Payments) != 0 {
		t.Errorf("CAD group has %d entries / %d payments, want 2 / 0", len(groups[0].Entries), len(groups[0].Payments))
	}
	if len(groups[1].Entries) != 1 || len(groups[1].Payments) != 1 {
		t.Errorf("USD group has %d entries / %d payments, want 1 / 1", len(groups[1].Entries), len(groups[1].Payments))
	}

	for _, g := range groups {
		for _, e := range g.Entries {
			if e.Currency != g.Currency {
				t.Errorf("entry with currency %s landed in %s group", e.Currency, g.Currency)
			}
		}
	}
}

func TestComputeBalancesAcrossCurrencies(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 100, Currency: "CAD", Shares: map[int64]float64{alice: 50, bob: 50}},
		{PayerID: bob, Amount: 40, Currency: "USD", Shares: map[int64]float64{alice: 20, bob: 20}},
	}

	balances := ComputeBalances(entries, nil)
	if len(balances) != 4 {
		t.Fatalf("ComputeBalances() returned %d balances, want 4", len(balances))
	}

	perCurrency := make(map[string]float64)
	for _, b := range balances {
		perCurrency[b.Currency] += b.Net
	}
	for code, sum := range perCurrency {
		if math.Abs(sum) > Epsilon {
			t.Errorf("%s balances sum to %v, want 0", code, sum)
		}
	}
}
