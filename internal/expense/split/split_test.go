package split

import (
	"errors"
	"math"
	"testing"
)

const (
	alice int64 = 1
	bob   int64 = 2
	carol int64 = 3
)

func TestEqualShares(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want map[int64]float64
		err  error
	}{
		{
			name: "splits evenly",
			req: Request{
				Total:        90,
				PayerID:      alice,
				Participants: []int64{alice, bob, carol},
			},
			want: map[int64]float64{alice: 30, bob: 30, carol: 30},
		},
		{
			name: "remainder cent goes to the last participant",
			req: Request{
				Total:        100,
				PayerID:      alice,
				Participants: []int64{alice, bob, carol},
			},
			want: map[int64]float64{alice: 33.33, bob: 33.33, carol: 33.34},
		},
		{
			name: "excluded participant gets no share",
			req: Request{
				Total:        100,
				PayerID:      alice,
				Participants: []int64{alice, bob, carol},
				Excluded:     []int64{carol},
			},
			want: map[int64]float64{alice: 50, bob: 50},
		},
		{
			name: "single participant owes everything",
			req: Request{
				Total:        42.37,
				PayerID:      alice,
				Participants: []int64{alice},
			},
			want: map[int64]float64{alice: 42.37},
		},
		{
			name: "everyone excluded",
			req: Request{
				Total:        50,
				PayerID:      alice,
				Participants: []int64{alice, bob},
				Excluded:     []int64{alice, bob},
			},
			err: ErrEmptyParticipants,
		},
		{
			name: "empty roster",
			req: Request{
				Total:   50,
				PayerID: alice,
			},
			err: ErrEmptyParticipants,
		},
		{
			name: "zero amount",
			req: Request{
				Total:        0,
				PayerID:      alice,
				Participants: []int64{alice, bob},
			},
			err: ErrNonPositiveAmount,
		},
		{
			name: "negative amount",
			req: Request{
				Total:        -10,
				PayerID:      alice,
				Participants: []int64{alice, bob},
			},
			err: ErrNonPositiveAmount,
		},
	}

	strategy := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Shares(tt.req)

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Shares() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Shares() error: %v", err)
			}

			if len(shares) != len(tt.want) {
				t.Fatalf("Shares() = %v, want %v", shares, tt.want)
			}
			for id, want := range tt.want {
				if math.Abs(shares[id]-want) > 0.001 {
					t.Errorf("share[%d] = %v, want %v", id, shares[id], want)
				}
			}
		})
	}
}

// A roster that lists the same user twice must not double a share or lose
// money: the duplicate collapses before division, and the shares still sum
// to the total.
func TestEqualSharesDuplicateRosterEntry(t *testing.T) {
	strategy := &EqualStrategy{}

	shares, err := strategy.Shares(Request{
		Total:        90,
		PayerID:      alice,
		Participants: []int64{alice, alice, bob},
	})
	if err != nil {
		t.Fatalf("Shares() error: %v", err)
	}

	want := map[int64]float64{alice: 45, bob: 45}
	if len(shares) != len(want) {
		t.Fatalf("Shares() = %v, want %v", shares, want)
	}
	var sum float64
	for id, share := range shares {
		if math.Abs(share-want[id]) > 0.001 {
			t.Errorf("share[%d] = %v, want %v", id, share, want[id])
		}
		sum += share
	}
	if math.Abs(sum-90) > 0.001 {
		t.Errorf("shares sum to %v, want 90", sum)
	}
}

// The sum of shares must equal the total exactly (to the cent) and no two
// shares may differ by more than one cent, for any roster size.
func TestEqualSharesSumAndSpread(t *testing.T) {
	strategy := &EqualStrategy{}
	totals := []float64{0.01, 0.05, 1, 10, 100, 33.33, 99.99, 250.75}

	for n := 1; n <= 7; n++ {
		roster := make([]int64, n)
		for i := range roster {
			roster[i] = int64(i + 1)
		}

		for _, total := range totals {
			shares, err := strategy.Shares(Request{
				Total:        total,
				PayerID:      roster[0],
				Participants: roster,
			})
			if err != nil {
				t.Fatalf("n=%d total=%v: %v", n, total, err)
			}

			var sum float64
			min, max := math.Inf(1), math.Inf(-1)
			for _, share := range shares {
				sum += share
				min = math.Min(min, share)
				max = math.Max(max, share)
			}
			if math.Abs(sum-total) > 0.001 {
				t.Errorf("n=%d total=%v: shares sum to %v", n, total, sum)
			}
			if max-min > 0.01+0.001 {
				t.Errorf("n=%d total=%v: share spread %v exceeds one cent", n, total, max-min)
			}
		}
	}
}

func TestCustomShares(t *testing.T) {
	strategy := &CustomStrategy{}

	t.Run("passes amounts through verbatim", func(t *testing.T) {
		in := map[int64]float64{alice: 60, bob: 25, carol: 15}
		shares, err := strategy.Shares(Request{
			Total:        100,
			PayerID:      alice,
			Participants: []int64{alice, bob, carol},
			Shares:       in,
		})
		if err != nil {
			t.Fatalf("Shares() error: %v", err)
		}
		for id, want := range in {
			if shares[id] != want {
				t.Errorf("share[%d] = %v, want %v exactly", id, shares[id], want)
			}
		}
	})

	t.Run("tolerates a sub-cent mismatch", func(t *testing.T) {
		_, err := strategy.Shares(Request{
			Total:        100,
			PayerID:      alice,
			Participants: []int64{alice, bob, carol},
			Shares:       map[int64]float64{alice: 33.33, bob: 33.33, carol: 33.33},
		})
		if err != nil {
			t.Errorf("Shares() error = %v, want shares within tolerance accepted", err)
		}
	})

	t.Run("rejects a sum mismatch with both values", func(t *testing.T) {
		_, err := strategy.Shares(Request{
			Total:        100,
			PayerID:      alice,
			Participants: []int64{alice, bob},
			Shares:       map[int64]float64{alice: 50, bob: 40},
		})

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Shares() error = %v, want *ValidationError", err)
		}
		if verr.Sum != 90 || verr.Total != 100 {
			t.Errorf("ValidationError = {Sum: %v, Total: %v}, want {Sum: 90, Total: 100}", verr.Sum, verr.Total)
		}
	})

	t.Run("rejects negative shares", func(t *testing.T) {
		_, err := strategy.Shares(Request{
			Total:        100,
			PayerID:      alice,
			Participants: []int64{alice, bob},
			Shares:       map[int64]float64{alice: 110, bob: -10},
		})
		if !errors.Is(err, ErrNegativeShare) {
			t.Errorf("Shares() error = %v, want %v", err, ErrNegativeShare)
		}
	})

	t.Run("requires shares", func(t *testing.T) {
		_, err := strategy.Shares(Request{
			Total:        100,
			PayerID:      alice,
			Participants: []int64{alice, bob},
		})
		if !errors.Is(err, ErrMissingCustomShare) {
			t.Errorf("Shares() error = %v, want %v", err, ErrMissingCustomShare)
		}
	})
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		mode    string
		want    Mode
		wantErr bool
	}{
		{mode: "EQUAL", want: ModeEqual},
		{mode: "CUSTOM", want: ModeCustom},
		{mode: "PERCENTAGE", wantErr: true},
		{mode: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("mode "+tt.mode, func(t *testing.T) {
			strategy, err := factory.CreateFromString(tt.mode)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CreateFromString(%q) succeeded, want error", tt.mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateFromString(%q) error: %v", tt.mode, err)
			}
			if strategy.Mode() != tt.want {
				t.Errorf("Mode() = %v, want %v", strategy.Mode(), tt.want)
			}
		})
	}
}
