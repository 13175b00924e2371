package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signatures, malformed payloads and expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Service issues and verifies signed, time-limited identity tokens.
type Service struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// New builds a Service for the given HMAC algorithm identifier (e.g. "HS256").
// now is injectable so expiry behaviour can be tested deterministically.
func New(secret, algorithm string, ttl time.Duration, now func() time.Time) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}

	method := jwt.GetSigningMethod(algorithm)

	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}

	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}

	if now == nil {
		now = time.Now
	}

	return &Service{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue signs claims {sub, iat, exp} for the given subject. When ttl is
// omitted the configured default applies.
func (s *Service) Issue(subject string, ttl ...time.Duration) (string, error) {
	d := s.ttl

	if len(ttl) > 0 {
		d = ttl[0]
	}

	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify checks signature, structure and expiry. Any failure surfaces as
// ErrInvalidToken; no further validation happens here.
func (s *Service) Verify(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return claims, nil
}
