package auth_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/logger"
	"github.com/dmitrymomot/mailpush/pkg/jwt"
)

const testSecret = "6DkWzVzVZqYjJmYTBkMjM0ZTEyMzQ1Njc4OTAxMjM0NTY3ODkw"

var testNow = time.Date(2025, 6, 26, 12, 0, 0, 0, time.UTC)

func newTestAuth(t *testing.T, now time.Time) (*auth.Verifier, *auth.Issuer) {
	t.Helper()

	svc, err := auth.NewService(auth.Config{Secret: testSecret, Algorithm: "HS512"}, jwt.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	return auth.NewVerifier(svc), auth.NewIssuer(svc, 24*time.Hour, auth.WithIssuerClock(func() time.Time { return now }))
}

func TestVerifier_Valid(t *testing.T) {
	t.Parallel()

	verifier, issuer := newTestAuth(t, testNow)

	token, err := issuer.Issue("carol@x")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{"raw_token", token},
		{"bearer_prefix", "Bearer " + token},
		{"lowercase_bearer", "bearer " + token},
		{"surrounding_space", "  Bearer " + token + " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			identity, ok := verifier.Verify(tt.raw)
			require.True(t, ok)
			assert.Equal(t, "carol@x", identity)
		})
	}
}

func TestVerifier_NormalizesSubject(t *testing.T) {
	t.Parallel()

	verifier, issuer := newTestAuth(t, testNow)

	token, err := issuer.Issue("  Carol@Example.COM ")
	require.NoError(t, err)

	identity, ok := verifier.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "carol@example.com", identity)
}

func TestVerifier_Rejects(t *testing.T) {
	t.Parallel()

	verifier, _ := newTestAuth(t, testNow)

	// Issued a day ago with a one-hour lifetime.
	_, pastIssuer := newTestAuth(t, testNow.Add(-24*time.Hour))
	expired, err := pastIssuer.IssueWithTTL("carol@x", time.Hour)
	require.NoError(t, err)

	otherSvc, err := auth.NewService(auth.Config{Secret: "another-secret", Algorithm: "HS512"})
	require.NoError(t, err)
	foreign, err := auth.NewIssuer(otherSvc, time.Hour).Issue("carol@x")
	require.NoError(t, err)

	hs256Svc, err := auth.NewService(auth.Config{Secret: testSecret, Algorithm: "HS256"})
	require.NoError(t, err)
	wrongAlg, err := auth.NewIssuer(hs256Svc, time.Hour).Issue("carol@x")
	require.NoError(t, err)

	svc, err := auth.NewService(auth.Config{Secret: testSecret}, jwt.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	noExpiry, err := svc.Generate(jwt.StandardClaims{Subject: "carol@x"})
	require.NoError(t, err)
	noSubject, err := svc.Generate(jwt.StandardClaims{ExpiresAt: testNow.Add(time.Hour).Unix()})
	require.NoError(t, err)
	badSubject, err := svc.Generate(jwt.StandardClaims{Subject: "not-an-email", ExpiresAt: testNow.Add(time.Hour).Unix()})
	require.NoError(t, err)

	valid, err := auth.NewIssuer(svc, time.Hour, auth.WithIssuerClock(func() time.Time { return testNow })).Issue("carol@x")
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := map[string]string{
		"empty":         "",
		"whitespace":    "   ",
		"bearer_only":   "Bearer ",
		"garbage":       "not-a-token",
		"two_segments":  "a.b",
		"dots":          "...",
		"binary":        "\x00\xff\xfe",
		"expired":       expired,
		"foreign_key":   foreign,
		"wrong_alg":     wrongAlg,
		"no_expiry":     noExpiry,
		"no_subject":    noSubject,
		"bad_subject":   badSubject,
		"tampered":      tampered,
		"double_bearer": "Bearer Bearer " + valid,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			identity, ok := verifier.Verify(raw)
			assert.False(t, ok)
			assert.Empty(t, identity)
		})
	}
}

func TestVerifier_DoesNotLogCredential(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc, err := auth.NewService(auth.Config{Secret: testSecret})
	require.NoError(t, err)

	verifier := auth.NewVerifier(svc, auth.WithLogger(logger.New(
		logger.WithDevelopment("test"),
		logger.WithOutput(&buf),
	)))

	_, ok := verifier.Verify("Bearer secret-looking-credential")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "reason=malformed")
	assert.NotContains(t, buf.String(), "secret-looking-credential")
}

func TestIssuer_Errors(t *testing.T) {
	t.Parallel()

	_, issuer := newTestAuth(t, testNow)

	_, err := issuer.Issue("")
	assert.ErrorIs(t, err, auth.ErrInvalidIdentity)

	_, err = issuer.Issue("no-at-sign")
	assert.ErrorIs(t, err, auth.ErrInvalidIdentity)

	_, err = issuer.IssueWithTTL("bob@x", 0)
	assert.ErrorIs(t, err, auth.ErrInvalidTTL)
}

func TestNewService_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := auth.NewService(auth.Config{})
	assert.ErrorIs(t, err, auth.ErrMissingSecret)

	_, err = auth.NewService(auth.Config{Secret: "s", Algorithm: "RS256"})
	assert.ErrorIs(t, err, jwt.ErrUnsupportedAlgorithm)
}
