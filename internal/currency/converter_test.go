package currency

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func testTable() Table {
	return Table{
		Anchor: "CAD",
		Rates: map[string]float64{
			"CAD": 1,
			"USD": 1.35,
			"EUR": 1.50,
		},
	}
}

func TestConvert(t *testing.T) {
	table := testTable()

	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
	}{
		{name: "foreign to anchor", amount: 100, from: "USD", to: "CAD", want: 135},
		{name: "anchor to foreign", amount: 135, from: "CAD", to: "USD", want: 100},
		{name: "foreign to foreign via anchor", amount: 100, from: "EUR", to: "USD", want: 111.11},
		{name: "unknown code falls back to anchor rate", amount: 42, from: "XYZ", to: "CAD", want: 42},
		{name: "result rounded to cents", amount: 10, from: "CAD", to: "EUR", want: 6.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Convert(tt.amount, tt.from, tt.to)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertIdentityIsUntouched(t *testing.T) {
	table := testTable()

	// The identity case must return the input bit-for-bit, not a rounded copy.
	amount := 33.333333
	if got := table.Convert(amount, "USD", "USD"); got != amount {
		t.Errorf("Convert(identity) = %v, want %v unchanged", got, amount)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.toml")
	contents := `
anchor = "CAD"

[rates]
USD = 1.35
EUR = 1.50
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Anchor != "CAD" {
		t.Errorf("Anchor = %s, want CAD", table.Anchor)
	}
	if table.Rates["USD"] != 1.35 {
		t.Errorf("Rates[USD] = %v, want 1.35", table.Rates["USD"])
	}
	if table.Rates["CAD"] != 1 {
		t.Errorf("Rates[CAD] = %v, want 1 (anchor rate is forced)", table.Rates["CAD"])
	}
}

func TestLoadMissingAnchor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.toml")
	if err := os.WriteFile(path, []byte("[rates]\nUSD = 1.35\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() without anchor expected error, got nil")
	}
}
