package notify

import (
	"net/http"
	"net/url"
	"strings"
)

// TokenParam is the query parameter carrying the credential on upgrade requests.
const TokenParam = "token"

// TokenVerifier resolves a credential to an identity. Implementations accept
// an optional "Bearer " prefix and strip it once; *auth.Verifier implements it.
type TokenVerifier interface {
	Verify(raw string) (identity string, ok bool)
}

// Gate decides whether an upgrade request may open a channel.
type Gate struct {
	verifier TokenVerifier
}

// NewGate creates a Gate over verifier.
func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Admit returns the identity carried by the request's token parameter.
// It returns ErrMissingToken if the parameter is absent or empty and
// ErrInvalidToken if the credential does not verify. The value is handed to
// the verifier unchanged, so a "Bearer " prefix is stripped exactly once.
func (g *Gate) Admit(r *http.Request) (string, error) {
	raw, ok := TokenFromQuery(r.URL.RawQuery)
	if !ok || strings.TrimSpace(raw) == "" {
		return "", ErrMissingToken
	}

	identity, ok := g.verifier.Verify(raw)
	if !ok {
		return "", ErrInvalidToken
	}
	return identity, nil
}

// TokenFromQuery extracts the first token parameter from a raw query string.
// The value is everything after the first '=' of the pair, so base64 padding
// is kept. It is percent-decoded once; if decoding fails the raw value is used.
func TokenFromQuery(rawQuery string) (string, bool) {
	for pair := range strings.SplitSeq(rawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key != TokenParam {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		return value, true
	}
	return "", false
}
