// Package token issues and validates the signed bearer tokens that assert
// a user's identity. Tokens are stateless: there is no revocation list,
// invalidation happens only through expiry.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwellhq/inkwell/domain"
)

// DefaultTTL is the token lifetime used when the caller does not specify one.
const DefaultTTL = 15 * time.Minute

// Claims is the fixed claim set carried by every token: a subject
// (username) and an expiry. Nothing else is encoded.
type Claims struct {
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens with a single symmetric key.
// The key is loaded once at process start and never changes, so a Service
// is safe for concurrent use.
type Service struct {
	signingKey []byte
	defaultTTL time.Duration
}

// NewService creates a token Service. ttl <= 0 falls back to DefaultTTL.
func NewService(signingKey []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{signingKey: signingKey, defaultTTL: ttl}
}

// Issue signs a token for the given subject. ttl <= 0 uses the service
// default.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("token: sign failed: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its subject. Any failure
// mode — malformed structure, wrong signature, lapsed expiry — collapses
// into domain.ErrInvalidToken so callers cannot tell which check failed.
// A token is invalid exactly at its expiry instant.
func (s *Service) Validate(raw string) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
