package money

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "12.34", want: "12.34"},
		{in: "1000", want: "1000"},
		{in: "-5.5", want: "-5.5"},
		{in: "0.005", want: "0.01"},
		{in: "99999999999999.99", want: "99999999999999.99"},
		{in: "100000000000000", wantErr: ErrInvalidMoney},
		{in: "-1e15", wantErr: ErrInvalidMoney},
	}
	for _, tt := range tests {
		got, err := Normalize(decimal.RequireFromString(tt.in))
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize(%s) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Normalize(%s): %v", tt.in, err)
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("Normalize(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRequiredRejectsExtremeExponents(t *testing.T) {
	for _, raw := range []string{"1e-20000000", "1e20000000", "0.0000000000000000001"} {
		var d decimal.NullDecimal
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		start := time.Now()
		_, err := Required(d)
		if !errors.Is(err, ErrInvalidMoney) {
			t.Fatalf("Required(%s) err = %v, want %v", raw, err, ErrInvalidMoney)
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Fatalf("Required(%s) took %v", raw, elapsed)
		}
	}
}

func TestNormalizeRejectsLongCoefficient(t *testing.T) {
	d := decimal.RequireFromString("1." + strings.Repeat("1", 40))
	if _, err := Normalize(d); !errors.Is(err, ErrInvalidMoney) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidMoney)
	}
}

func TestRequiredMissing(t *testing.T) {
	if _, err := Required(decimal.NullDecimal{}); !errors.Is(err, ErrMissing) {
		t.Fatalf("err = %v, want %v", err, ErrMissing)
	}
}

func TestRequiredAllowsNegative(t *testing.T) {
	got, err := Required(decimal.NewNullDecimal(decimal.NewFromInt(-250)))
	if err != nil {
		t.Fatalf("required: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(-250)) {
		t.Fatalf("got %s, want -250", got)
	}
}

func TestJSONNumbers(t *testing.T) {
	out, err := json.Marshal(map[string]decimal.Decimal{"balance": decimal.RequireFromString("1300.50")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"balance":1300.5}` {
		t.Fatalf("json = %s", out)
	}

	var in struct {
		Amount decimal.NullDecimal `json:"amount"`
	}
	if err := json.Unmarshal([]byte(`{"amount": 42.75}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Amount.Valid || !in.Amount.Decimal.Equal(decimal.RequireFromString("42.75")) {
		t.Fatalf("amount = %+v", in.Amount)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(decimal.NewFromInt(1300)); got != "1300.00" {
		t.Fatalf("format = %q", got)
	}
}
