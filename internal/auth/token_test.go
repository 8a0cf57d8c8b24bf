package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
)

var testSecret = []byte("test-secret")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager(testSecret, 7*24*time.Hour).WithClock(fixedClock(issued))

	token, exp, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(issued.Add(7 * 24 * time.Hour)) {
		t.Fatalf("exp = %v", exp)
	}

	claims, err := m.WithClock(fixedClock(issued.Add(6 * 24 * time.Hour))).Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Subject != "42" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthenticate(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager(testSecret, 7*24*time.Hour).WithClock(fixedClock(issued))
	valid, _, err := m.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other, _, err := NewTokenManager([]byte("other-secret"), time.Hour).WithClock(fixedClock(issued)).Issue(7)
	if err != nil {
		t.Fatalf("issue other: %v", err)
	}
	tampered := valid[:len(valid)-2] + flip(valid[len(valid)-2:])

	tests := []struct {
		name     string
		header   string
		now      time.Time
		wantID   int64
		wantCode apperr.Code
		wantMsg  string
	}{
		{name: "valid", header: "Bearer " + valid, now: issued, wantID: 7},
		{name: "lowercase scheme", header: "bearer " + valid, now: issued, wantID: 7},
		{name: "missing header", header: "", now: issued, wantCode: apperr.CodeUnauthenticated, wantMsg: MsgHeaderMissing},
		{name: "bearer only", header: "Bearer", now: issued, wantCode: apperr.CodeUnauthenticated, wantMsg: MsgTokenMissing},
		{name: "null token", header: "Bearer null", now: issued, wantCode: apperr.CodeUnauthenticated, wantMsg: MsgTokenMissing},
		{name: "expired", header: "Bearer " + valid, now: issued.Add(8 * 24 * time.Hour), wantCode: apperr.CodeTokenExpired, wantMsg: MsgTokenExpired},
		{name: "tampered", header: "Bearer " + tampered, now: issued, wantCode: apperr.CodeTokenInvalid, wantMsg: MsgTokenInvalid},
		{name: "wrong secret", header: "Bearer " + other, now: issued, wantCode: apperr.CodeTokenInvalid},
		{name: "garbage", header: "Bearer not.a.token", now: issued, wantCode: apperr.CodeTokenInvalid},
		{name: "wrong scheme", header: "Basic " + valid, now: issued, wantCode: apperr.CodeTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := m.WithClock(fixedClock(tt.now)).Authenticate(tt.header)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("authenticate: %v", err)
				}
				if id != tt.wantID {
					t.Fatalf("id = %d, want %d", id, tt.wantID)
				}
				return
			}
			if got := apperr.CodeOf(err); got != tt.wantCode {
				t.Fatalf("code = %s, want %s (err %v)", got, tt.wantCode, err)
			}
			if tt.wantMsg != "" && !strings.HasPrefix(err.Error(), tt.wantMsg) {
				t.Fatalf("message = %q, want prefix %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenManager(testSecret, time.Hour).Verify(token); apperr.CodeOf(err) != apperr.CodeTokenInvalid {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestVerifyRequiresUserID(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenManager(testSecret, time.Hour).Verify(token); apperr.CodeOf(err) != apperr.CodeTokenInvalid {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func flip(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
	}
	return string(b)
}
