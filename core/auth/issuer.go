package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailpush/pkg/jwt"
)

// Issuer mints credentials for an identity.
type Issuer struct {
	service *jwt.Service
	issuer  string
	ttl     time.Duration
	now     func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the clock used for iat and exp.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// WithIssuerName sets the iss claim.
func WithIssuerName(name string) IssuerOption {
	return func(i *Issuer) {
		i.issuer = name
	}
}

// NewIssuer creates an Issuer with a default lifetime for issued tokens.
func NewIssuer(service *jwt.Service, ttl time.Duration, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		service: service,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue returns a signed credential for identity valid for the default ttl.
func (i *Issuer) Issue(identity string) (string, error) {
	return i.IssueWithTTL(identity, i.ttl)
}

// IssueWithTTL returns a signed credential for identity valid for ttl.
func (i *Issuer) IssueWithTTL(identity string, ttl time.Duration) (string, error) {
	identity = NormalizeIdentity(identity)
	if !ValidIdentity(identity) {
		return "", ErrInvalidIdentity
	}
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	now := i.now()
	return i.service.Generate(jwt.StandardClaims{
		ID:        uuid.NewString(),
		Subject:   identity,
		Issuer:    i.issuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
}
