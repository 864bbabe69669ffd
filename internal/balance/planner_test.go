package balance

import (
	"errors"
	"math"
	"testing"
)

func TestPlanTwoCreditorsOneDebtor(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 90, Currency: "CAD", Shares: map[int64]float64{alice: 30, bob: 30, carol: 30}},
		{PayerID: bob, Amount: 60, Currency: "CAD", Shares: map[int64]float64{alice: 20, bob: 20, carol: 20}},
	}

	// Alice +40, Bob +10, Carol -50.
	settlements, err := Plan("CAD", Compute("CAD", entries, nil))
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	want := []Settlement{
		{FromUserID: carol, ToUserID: alice, Amount: 40, Currency: "CAD"},
		{FromUserID: carol, ToUserID: bob, Amount: 10, Currency: "CAD"},
	}
	if len(settlements) != len(want) {
		t.Fatalf("Plan() returned %d settlements, want %d: %v", len(settlements), len(want), settlements)
	}
	for i, s := range settlements {
		if s.FromUserID != want[i].FromUserID || s.ToUserID != want[i].ToUserID || math.Abs(s.Amount-want[i].Amount) > 0.001 {
			t.Errorf("settlement[%d] = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestPlanAlreadySettled(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 20, Currency: "CAD", Shares: map[int64]float64{alice: 20}},
	}

	settlements, err := Plan("CAD", Compute("CAD", entries, nil))
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(settlements) != 0 {
		t.Errorf("Plan() = %v, want no settlements", settlements)
	}
}

func TestPlanProperties(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
	}{
		{
			name: "one debtor many creditors",
			balances: []Balance{
				{UserID: 1, Net: 40, Currency: "CAD"},
				{UserID: 2, Net: 10, Currency: "CAD"},
				{UserID: 3, Net: -50, Currency: "CAD"},
			},
		},
		{
			name: "many debtors one creditor",
			balances: []Balance{
				{UserID: 1, Net: 75.5, Currency: "CAD"},
				{UserID: 2, Net: -25.25, Currency: "CAD"},
				{UserID: 3, Net: -25.25, Currency: "CAD"},
				{UserID: 4, Net: -25, Currency: "CAD"},
			},
		},
		{
			name: "mixed both sides",
			balances: []Balance{
				{UserID: 1, Net: 33.34, Currency: "CAD"},
				{UserID: 2, Net: 66.66, Currency: "CAD"},
				{UserID: 3, Net: -12.5, Currency: "CAD"},
				{UserID: 4, Net: -40, Currency: "CAD"},
				{UserID: 5, Net: -47.5, Currency: "CAD"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settlements, err := Plan("CAD", tt.balances)
			if err != nil {
				t.Fatalf("Plan() error: %v", err)
			}

			// At most n-1 settlements for n non-zero balances.
			if max := len(tt.balances) - 1; len(settlements) > max {
				t.Errorf("Plan() emitted %d settlements, want <= %d", len(settlements), max)
			}

			// Settled amounts cover exactly the creditor side.
			var credit, settled float64
			for _, b := range tt.balances {
				if b.Net > 0 {
					credit += b.Net
				}
			}
			for _, s := range settlements {
				if s.Amount <= Epsilon {
					t.Errorf("settlement %+v at or below epsilon", s)
				}
				settled += s.Amount
			}
			if math.Abs(settled-credit) > Epsilon {
				t.Errorf("settled %v, want %v", settled, credit)
			}
		})
	}
}

func TestPlanTieBreaksOnUserID(t *testing.T) {
	balances := []Balance{
		{UserID: 9, Net: -15, Currency: "CAD"},
		{UserID: 5, Net: 30, Currency: "CAD"},
		{UserID: 2, Net: -15, Currency: "CAD"},
	}

	settlements, err := Plan("CAD", balances)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	// Equal debts settle in ascending user ID order.
	want := []Settlement{
		{FromUserID: 2, ToUserID: 5, Amount: 15, Currency: "CAD"},
		{FromUserID: 9, ToUserID: 5, Amount: 15, Currency: "CAD"},
	}
	if len(settlements) != len(want) {
		t.Fatalf("Plan() returned %d settlements, want %d", len(settlements), len(want))
	}
	for i, s := range settlements {
		if s.FromUserID != want[i].FromUserID || s.ToUserID != want[i].ToUserID {
			t.Errorf("settlement[%d] = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestPlanUnbalancedLedgerFailsLoud(t *testing.T) {
	balances := []Balance{
		{UserID: alice, Net: 50, Currency: "CAD"},
		{UserID: bob, Net: -20, Currency: "CAD"},
	}

	_, err := Plan("CAD", balances)

	var ierr *InvariantError
	if !errors.As(err, &ierr) {
		t.Fatalf("Plan() error = %v, want *InvariantError", err)
	}
	if ierr.Currency != "CAD" {
		t.Errorf("InvariantError.Currency = %s, want CAD", ierr.Currency)
	}
	if len(ierr.Leftover) != 1 || ierr.Leftover[0].UserID != alice {
		t.Errorf("InvariantError.Leftover = %v, want user %d's remainder", ierr.Leftover, alice)
	}
}

func TestPlanSettlementsNeverMixesCurrencies(t *testing.T) {
	entries := []Entry{
		{PayerID: alice, Amount: 100, Currency: "CAD", Shares: map[int64]float64{alice: 50, bob: 50}},
		{PayerID: bob, Amount: 40, Currency: "USD", Shares: map[int64]float64{alice: 20, bob: 20}},
	}

	settlements, err := PlanSettlements(entries, nil)
	if err != nil {
		t.Fatalf("PlanSettlements() error: %v", err)
	}

	want := map[string]Settlement{
		"CAD": {FromUserID: bob, ToUserID: alice, Amount: 50, Currency: "CAD"},
		"USD": {FromUserID: alice, ToUserID: bob, Amount: 20, Currency: "USD"},
	}
	if len(settlements) != len(want) {
		t.Fatalf("PlanSettlements() returned %d settlements, want %d", len(settlements), len(want))
	}
	for _, s := range settlements {
		w := want[s.Currency]
		if s.FromUserID != w.FromUserID || s.ToUserID != w.ToUserID || math.Abs(s.Amount-w.Amount) > 0.001 {
			t.Errorf("%s settlement = %+v, want %+v", s.Currency, s, w)
		}
	}
}
