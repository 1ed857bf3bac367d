// Package auth issues and verifies the signed bearer tokens that carry
// request identity, and provides the HTTP middleware that enforces them.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed token,
// bad signature, expired token, missing subject. Callers get no more
// detail than that by design of the wire contract.
var ErrInvalidToken = errors.New("invalid token")

// clock skew tolerance when checking exp/iat
const leeway = 5 * time.Second

// Claims carries the registered claims plus the account email for
// informational echo. The subject is the account ID and is the only
// claim authorization decisions may use.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Tokens signs and verifies HS256 tokens with a process-wide secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(cfg Config) *Tokens {
	return &Tokens{secret: []byte(cfg.Secret), ttl: cfg.TokenTTL}
}

// Issue produces a signed token whose subject is the account ID.
func (t *Tokens) Issue(accountID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email: email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature and expiry and returns the account ID.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(tok *jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
