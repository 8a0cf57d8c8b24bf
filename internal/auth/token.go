// Package auth is the credential gate: it issues and verifies bearer tokens
// and hashes passwords.
package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
)

const (
	MsgHeaderMissing = "Authorization header is missing."
	MsgTokenMissing  = "Token not provided."
	MsgTokenExpired  = "Token has expired. Please log in again."
	MsgTokenInvalid  = "Token is invalid."
)

// Claims is the signed token payload.
type Claims struct {
	UserID int64 `json:"userid"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a manager issuing tokens valid for ttl.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of m that reads time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

// Issue signs a token for userID and returns it with its expiry.
func (m *TokenManager) Issue(userID int64) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks the signature and expiry of token.
func (m *TokenManager) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	if claims.UserID <= 0 {
		return Claims{}, apperr.New(apperr.CodeTokenInvalid, MsgTokenInvalid)
	}
	return claims, nil
}

// Authenticate resolves an Authorization header value to a user id.
func (m *TokenManager) Authenticate(header string) (int64, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, apperr.New(apperr.CodeUnauthenticated, MsgHeaderMissing)
	}

	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if token == "" || token == "null" || token == "undefined" {
		return 0, apperr.New(apperr.CodeUnauthenticated, MsgTokenMissing)
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return 0, apperr.New(apperr.CodeTokenInvalid, MsgTokenInvalid)
	}

	claims, err := m.Verify(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperr.Wrap(apperr.CodeTokenExpired, MsgTokenExpired, err)
	}
	return apperr.Wrap(apperr.CodeTokenInvalid, MsgTokenInvalid, err)
}
