package expense

import (
	"errors"
	"math"
	"testing"

	"github.com/bodhiforge/fintrack-ai-sub000/internal/expense/split"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/group"
)

func member(userID int64, name string) *group.Member {
	return &group.Member{UserID: userID, Name: name}
}

func TestBuildSplitRequestRosterInJoinOrder(t *testing.T) {
	members := []*group.Member{
		member(1, "Alice"),
		member(2, "Bob"),
		member(3, "Carol"),
	}

	req, err := buildSplitRequest(members, 1, &CreateExpenseRequest{Amount: 90, SplitMode: "EQUAL"})
	if err != nil {
		t.Fatalf("buildSplitRequest() error: %v", err)
	}

	want := []int64{1, 2, 3}
	if len(req.Participants) != len(want) {
		t.Fatalf("Participants = %v, want %v", req.Participants, want)
	}
	for i, id := range want {
		if req.Participants[i] != id {
			t.Errorf("Participants[%d] = %d, want %d", i, req.Participants[i], id)
		}
	}
	if req.PayerID != 1 || req.Total != 90 {
		t.Errorf("request = %+v, want payer 1 total 90", req)
	}
}

// Two members sharing a display name must stay two participants: the split
// request is keyed by user ID, so their shares never collapse into one and
// the computed shares still cover the full amount.
func TestBuildSplitRequestSameNameMembersStayDistinct(t *testing.T) {
	members := []*group.Member{
		member(1, "Alice"),
		member(2, "Alice"),
		member(3, "Bob"),
	}

	req, err := buildSplitRequest(members, 1, &CreateExpenseRequest{Amount: 90, SplitMode: "EQUAL"})
	if err != nil {
		t.Fatalf("buildSplitRequest() error: %v", err)
	}

	shares, err := (&split.EqualStrategy{}).Shares(req)
	if err != nil {
		t.Fatalf("Shares() error: %v", err)
	}

	if len(shares) != 3 {
		t.Fatalf("Shares() = %v, want one share per member", shares)
	}
	var sum float64
	for _, share := range shares {
		sum += share
	}
	if math.Abs(sum-90) > 0.001 {
		t.Errorf("shares sum to %v, want 90", sum)
	}
}

func TestBuildSplitRequestNoteExcludesAllMembersWithThatName(t *testing.T) {
	members := []*group.Member{
		member(1, "Alice"),
		member(2, "Bob"),
		member(3, "Alice"),
	}

	req, err := buildSplitRequest(members, 2, &CreateExpenseRequest{
		Amount:    60,
		SplitMode: "EQUAL",
		Note:      "dinner without Alice",
	})
	if err != nil {
		t.Fatalf("buildSplitRequest() error: %v", err)
	}

	// A name cannot single out one of its bearers, so both Alices sit out.
	excluded := make(map[int64]bool, len(req.Excluded))
	for _, id := range req.Excluded {
		excluded[id] = true
	}
	if !excluded[1] || !excluded[3] || excluded[2] {
		t.Errorf("Excluded = %v, want users 1 and 3", req.Excluded)
	}

	shares, err := (&split.EqualStrategy{}).Shares(req)
	if err != nil {
		t.Fatalf("Shares() error: %v", err)
	}
	if len(shares) != 1 || math.Abs(shares[2]-60) > 0.001 {
		t.Errorf("Shares() = %v, want Bob owing 60", shares)
	}
}

func TestBuildSplitRequestExplicitExclusions(t *testing.T) {
	members := []*group.Member{
		member(1, "Alice"),
		member(2, "Bob"),
	}

	req, err := buildSplitRequest(members, 1, &CreateExpenseRequest{
		Amount:          50,
		SplitMode:       "EQUAL",
		ExcludedUserIDs: []int64{2, 99},
	})
	if err != nil {
		t.Fatalf("buildSplitRequest() error: %v", err)
	}

	// Non-member 99 is dropped, member 2 is kept.
	if len(req.Excluded) != 1 || req.Excluded[0] != 2 {
		t.Errorf("Excluded = %v, want [2]", req.Excluded)
	}
}

func TestBuildSplitRequestDropsNonMemberShares(t *testing.T) {
	members := []*group.Member{
		member(1, "Alice"),
		member(2, "Bob"),
	}

	req, err := buildSplitRequest(members, 1, &CreateExpenseRequest{
		Amount:    100,
		SplitMode: "CUSTOM",
		Shares: []*ShareInput{
			{UserID: 1, Amount: 60},
			{UserID: 2, Amount: 30},
			{UserID: 99, Amount: 10},
		},
	})
	if err != nil {
		t.Fatalf("buildSplitRequest() error: %v", err)
	}

	if len(req.Shares) != 2 {
		t.Fatalf("Shares = %v, want the non-member dropped", req.Shares)
	}

	// The dropped share leaves the sum short, which custom validation
	// reports instead of papering over.
	_, err = (&split.CustomStrategy{}).Shares(req)
	var verr *split.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Shares() error = %v, want *split.ValidationError", err)
	}
	if verr.Sum != 90 || verr.Total != 100 {
		t.Errorf("ValidationError = {Sum: %v, Total: %v}, want {Sum: 90, Total: 100}", verr.Sum, verr.Total)
	}
}

func TestBuildSplitRequestPayerMustBeMember(t *testing.T) {
	members := []*group.Member{
		member(1, "Alice"),
	}

	_, err := buildSplitRequest(members, 42, &CreateExpenseRequest{Amount: 10, SplitMode: "EQUAL"})
	if !errors.Is(err, ErrPayerNotMember) {
		t.Errorf("buildSplitRequest() error = %v, want %v", err, ErrPayerNotMember)
	}
}
