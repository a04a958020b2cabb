package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for cookies that fail signature or expiry
// checks.
var ErrInvalidToken = errors.New("invalid session token")

// Codec signs session ids into the cookie value as HS256 tokens so a
// tampered or forged cookie is rejected before any store lookup.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Encode wraps id in a signed token expiring with the session.
func (c *Codec) Encode(id string) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return t.SignedString(c.secret)
}

// Decode verifies raw and returns the session id inside it.
func (c *Codec) Decode(raw string) (string, error) {
	var cl claims
	tok, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || cl.SID == "" {
		return "", ErrInvalidToken
	}
	return cl.SID, nil
}

// TTL returns the lifetime given to new sessions.
func (c *Codec) TTL() time.Duration { return c.ttl }
