package currency

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ratesFile is the on-disk shape of a rate table (see configs/rates.toml).
type ratesFile struct {
	Anchor string             `toml:"anchor"`
	Rates  map[string]float64 `toml:"rates"`
}

// Load reads a rate table from a TOML file. The anchor's own rate is forced
// to 1 so a sloppy config cannot skew identity conversions through the
// anchor.
func Load(path string) (Table, error) {
	var f ratesFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Table{}, fmt.Errorf("failed to load rate table: %w", err)
	}
	if f.Anchor == "" {
		return Table{}, fmt.Errorf("rate table %s has no anchor currency", path)
	}
	if f.Rates == nil {
		f.Rates = make(map[string]float64)
	}
	f.Rates[f.Anchor] = 1

	return Table{Anchor: f.Anchor, Rates: f.Rates}, nil
}

// DefaultTable returns the built-in CAD-anchored table used when no rates
// file is configured.
func DefaultTable() Table {
	return Table{
		Anchor: "CAD",
		Rates: map[string]float64{
			"CAD": 1,
			"USD": 1.37,
			"EUR": 1.49,
			"GBP": 1.73,
			"JPY": 0.0092,
			"CNY": 0.19,
			"INR": 0.016,
			"AUD": 0.90,
			"KRW": 0.001,
			"MXN": 0.073,
		},
	}
}
