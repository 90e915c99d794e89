package auth

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/mailpush/core/logger"
	"github.com/dmitrymomot/mailpush/pkg/jwt"
)

// Failure categories reported in logs. The credential itself is never logged.
const (
	reasonMalformed = "malformed"
	reasonSignature = "signature"
	reasonExpired   = "expired"
	reasonSubject   = "subject"
)

// Verifier resolves bearer credentials to identities.
// It holds only the immutable signing service and is safe for concurrent use.
type Verifier struct {
	service *jwt.Service
	logger  *slog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithLogger sets the logger used for coarse failure categories.
func WithLogger(log *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if log != nil {
			v.logger = log
		}
	}
}

// NewVerifier creates a Verifier over the given token service.
func NewVerifier(service *jwt.Service, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		service: service,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify returns the normalized identity encoded in raw, or ok=false when the
// credential is empty, malformed, signed with another key or algorithm,
// expired, lacks an expiry, or carries no usable subject. An optional
// "Bearer " prefix is accepted.
func (v *Verifier) Verify(raw string) (identity string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v.reject(reasonMalformed)
			identity, ok = "", false
		}
	}()

	token := StripScheme(raw)
	if token == "" {
		v.reject(reasonMalformed)
		return "", false
	}

	var claims jwt.StandardClaims
	if err := v.service.Parse(token, &claims); err != nil {
		v.reject(classify(err))
		return "", false
	}

	if claims.ExpiresAt == 0 {
		v.reject(reasonExpired)
		return "", false
	}

	identity = NormalizeIdentity(claims.Subject)
	if !ValidIdentity(identity) {
		v.reject(reasonSubject)
		return "", false
	}

	return identity, true
}

func (v *Verifier) reject(reason string) {
	v.logger.Debug("credential rejected",
		logger.Component("auth"),
		logger.Reason(reason),
	)
}

func classify(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return reasonExpired
	case errors.Is(err, jwt.ErrInvalidSignature), errors.Is(err, jwt.ErrUnexpectedSigningMethod):
		return reasonSignature
	default:
		return reasonMalformed
	}
}
