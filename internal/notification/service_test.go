package notification

import "testing"

func TestMessages(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "expense added",
			got:  expenseAddedMessage("Alice", 33.34, "CAD"),
			want: "Alice added an expense; your share is 33.34 CAD",
		},
		{
			name: "expense added rounds to cents",
			got:  expenseAddedMessage("Bob", 12.5, "EUR"),
			want: "Bob added an expense; your share is 12.50 EUR",
		},
		{
			name: "payment recorded",
			got:  paymentRecordedMessage("Carol", 40, "USD"),
			want: "Carol recorded a payment of 40.00 USD to you",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("message = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
