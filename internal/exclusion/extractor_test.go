package exclusion

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	participants := []string{"Alice", "Bob", "Carol"}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "without phrasing",
			text: "dinner 120 without Carol",
			want: []string{"Carol"},
		},
		{
			name: "exclude phrasing",
			text: "split the taxi, exclude bob",
			want: []string{"Bob"},
		},
		{
			name: "not including phrasing",
			text: "groceries 85, not including Alice",
			want: []string{"Alice"},
		},
		{
			name: "minus phrasing",
			text: "brunch minus carol",
			want: []string{"Carol"},
		},
		{
			name: "didn't join phrasing",
			text: "movie night, Bob didn't join",
			want: []string{"Bob"},
		},
		{
			name: "wasn't there phrasing",
			text: "lunch yesterday, carol wasn't there",
			want: []string{"Carol"},
		},
		{
			name: "isn't drinking phrasing",
			text: "bar tab, alice isn't drinking",
			want: []string{"Alice"},
		},
		{
			name: "bare no phrasing",
			text: "pizza, no carol",
			want: []string{"Carol"},
		},
		{
			name: "multiple rules, multiple names",
			text: "hotpot without Bob, Carol didn't join",
			want: []string{"Bob", "Carol"},
		},
		{
			name: "same name matched twice is reported once",
			text: "without bob, bob wasn't there",
			want: []string{"Bob"},
		},
		{
			name: "unknown name is silently ignored",
			text: "dinner without Dave",
			want: nil,
		},
		{
			name: "plain text with no exclusion cue",
			text: "dinner 120 at the usual place",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, participants)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractReturnsCanonicalSpelling(t *testing.T) {
	got := Extract("coffee without ALICE", []string{"alice", "Bob"})
	if len(got) != 1 || got[0] != "alice" {
		t.Errorf("Extract() = %v, want the participant list's spelling", got)
	}
}

func TestExtractNoParticipants(t *testing.T) {
	if got := Extract("dinner without bob", nil); got != nil {
		t.Errorf("Extract() with no participants = %v, want nil", got)
	}
}
