// Package token signs and verifies the compact JWTs used as access and
// refresh credentials. The codec is stateless and safe for concurrent use.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// Codec issues and verifies HS256-signed tokens carrying an issuer, a
// subject and an absolute expiration.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewCodec builds a Codec for the given issuer keyed by secret.
func NewCodec(secret, issuer string) *Codec {
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue produces a signed token for subject expiring at expiresAt.
// Returns domain.ErrTokenCreation when the codec is misconfigured or
// signing fails.
func (c *Codec) Issue(subject string, expiresAt time.Time) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("%w: empty signing secret", domain.ErrTokenCreation)
	}

	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenCreation, err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiration, and returns the embedded
// subject. Every failure mode (bad signature, wrong issuer, expired,
// malformed) collapses to domain.ErrTokenInvalid; callers must not be able
// to distinguish them. A token is rejected at and after its expiration
// instant.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return claims.Subject, nil
}
