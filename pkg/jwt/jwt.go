package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
)

// Algorithm names an HMAC signing algorithm.
type Algorithm string

const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
)

// StandardClaims holds the RFC 7519 registered claims.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid validates temporal claims against the wall clock.
// Service.Parse uses its own clock through ValidAt instead.
func (c StandardClaims) Valid() error {
	return c.ValidAt(time.Now())
}

// ValidAt validates exp and nbf against the given instant.
// A token is valid strictly before its expiration second.
func (c StandardClaims) ValidAt(now time.Time) error {
	ts := now.Unix()
	if c.ExpiresAt != 0 && ts >= c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.NotBefore != 0 && ts < c.NotBefore {
		return ErrInvalidToken
	}
	return nil
}

// Standard exposes the embedded standard claims of custom claim types.
func (c *StandardClaims) Standard() *StandardClaims {
	return c
}

// Claims is implemented by *StandardClaims and by pointers to any struct embedding it.
type Claims interface {
	Valid() error
	Standard() *StandardClaims
}

// Service signs and parses tokens with a single HMAC key and algorithm.
// Safe for concurrent use.
type Service struct {
	signingKey []byte
	method     *gojwt.SigningMethodHMAC
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service) error

// WithAlgorithm selects the HMAC algorithm. Default is HS256.
func WithAlgorithm(alg Algorithm) Option {
	return func(s *Service) error {
		m, err := methodFor(alg)
		if err != nil {
			return err
		}
		s.method = m
		return nil
	}
}

// WithClock overrides the clock used for temporal claim validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}

// New creates a Service from a raw signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: signingKey,
		method:     gojwt.SigningMethodHS256,
		now:        time.Now,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewFromString creates a Service from a string signing key.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// Algorithm reports the algorithm used for signing and accepted when parsing.
func (s *Service) Algorithm() Algorithm {
	return Algorithm(s.method.Alg())
}

// Generate signs the claims and returns the compact serialized token.
func (s *Service) Generate(claims gojwt.Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	token, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Parse verifies the token signature and decodes it into claims.
// Only the configured algorithm is accepted.
func (s *Service) Parse(token string, claims Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}
	if token == "" {
		return ErrInvalidToken
	}

	parser := gojwt.NewParser(
		gojwt.WithValidMethods([]string{s.method.Alg()}),
		gojwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(token, claims, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return s.signingKey, nil
	})
	if err != nil {
		return mapError(err)
	}

	return claims.Standard().ValidAt(s.now())
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrUnexpectedSigningMethod):
		return ErrUnexpectedSigningMethod
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return ErrInvalidToken
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, gojwt.ErrTokenUnverifiable):
		return ErrUnexpectedSigningMethod
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}

func methodFor(alg Algorithm) (*gojwt.SigningMethodHMAC, error) {
	switch alg {
	case HS256:
		return gojwt.SigningMethodHS256, nil
	case HS384:
		return gojwt.SigningMethodHS384, nil
	case HS512:
		return gojwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}
