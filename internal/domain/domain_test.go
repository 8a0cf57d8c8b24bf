package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2024-01-05", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2024-01-05T10:30:00.000Z", want: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC), ok: true},
		{in: "2024-01-05T10:30:00+05:30", want: time.Date(2024, 1, 5, 5, 0, 0, 0, time.UTC), ok: true},
		{in: "January 5, 2024"},
		{in: ""},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if !tt.ok {
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKindDelta(t *testing.T) {
	amount := decimal.NewFromInt(200)
	want := map[Kind]int64{
		KindSpend:   -200,
		KindLend:    -200,
		KindBorrow:  200,
		KindDeposit: 200,
	}
	for kind, w := range want {
		if got := kind.Delta(amount); !got.Equal(decimal.NewFromInt(w)) {
			t.Fatalf("%s delta = %s, want %d", kind, got, w)
		}
	}
}
