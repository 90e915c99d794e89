package notify_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/notify"
)

func TestTokenFromQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
		found bool
	}{
		{"only_param", "token=abc", "abc", true},
		{"among_others", "a=1&token=abc&b=2", "abc", true},
		{"first_occurrence_wins", "token=first&token=second", "first", true},
		{"keeps_padding", "token=abc==", "abc==", true},
		{"percent_encoded_bearer", "token=Bearer%20abc", "Bearer abc", true},
		{"plus_as_space", "token=Bearer+abc", "Bearer abc", true},
		{"invalid_escape_uses_raw", "token=abc%zz", "abc%zz", true},
		{"empty_value", "token=", "", true},
		{"key_without_value", "token", "", true},
		{"prefixed_key_ignored", "xtoken=abc", "", false},
		{"suffixed_key_ignored", "tokens=abc", "", false},
		{"absent", "a=1&b=2", "", false},
		{"empty_query", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := notify.TokenFromQuery(tt.query)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGate_Admit(t *testing.T) {
	t.Parallel()

	gate := notify.NewGate(fakeVerifier{"good": "carol@x"})

	tests := []struct {
		name     string
		target   string
		identity string
		err      error
	}{
		{"valid", "/ws/mail/carol@x?token=good", "carol@x", nil},
		{"valid_with_bearer", "/ws/mail/carol@x?token=Bearer%20good", "carol@x", nil},
		{"path_identity_ignored", "/ws/mail/someone@x?token=good", "carol@x", nil},
		{"missing", "/ws/mail/carol@x", "", notify.ErrMissingToken},
		{"empty", "/ws/mail/carol@x?token=", "", notify.ErrMissingToken},
		{"blank", "/ws/mail/carol@x?token=%20%20", "", notify.ErrMissingToken},
		{"invalid", "/ws/mail/carol@x?token=bad", "", notify.ErrInvalidToken},
		{"second_occurrence_not_used", "/ws/mail/carol@x?token=bad&token=good", "", notify.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			identity, err := gate.Admit(httptest.NewRequest("GET", tt.target, nil))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.identity, identity)
		})
	}
}

func TestGate_AdmitStripsSchemeOnce(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewService(auth.Config{Secret: testSecret})
	require.NoError(t, err)
	token, err := auth.NewIssuer(svc, time.Hour).Issue("carol@x")
	require.NoError(t, err)

	gate := notify.NewGate(auth.NewVerifier(svc))
	admit := func(value string) (string, error) {
		return gate.Admit(httptest.NewRequest("GET", "/ws/mail/carol@x?token="+url.QueryEscape(value), nil))
	}

	identity, err := admit(token)
	require.NoError(t, err)
	assert.Equal(t, "carol@x", identity)

	identity, err = admit("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "carol@x", identity)

	identity, err = admit("Bearer Bearer " + token)
	assert.ErrorIs(t, err, notify.ErrInvalidToken)
	assert.Empty(t, identity)
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	_, ok := notify.IdentityFromContext(context.Background())
	assert.False(t, ok)

	id, ok := notify.IdentityFromContext(notify.WithIdentity(context.Background(), "carol@x"))
	require.True(t, ok)
	assert.Equal(t, "carol@x", id)
}
