package middleware_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/logger"
	"github.com/dmitrymomot/mailpush/middleware"
)

type fakeVerifier map[string]string

func (v fakeVerifier) Verify(raw string) (string, bool) {
	id, ok := v[auth.StripScheme(raw)]
	return id, ok
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates_uuid", func(t *testing.T) {
		t.Parallel()

		var captured string
		h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.GetRequestID(r.Context())
			require.True(t, ok)
			captured = id
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, captured, 36)
		assert.Equal(t, captured, rec.Header().Get("X-Request-ID"))
	})

	t.Run("uses_existing", func(t *testing.T) {
		t.Parallel()

		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom_generator", func(t *testing.T) {
		t.Parallel()

		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: func() string { return "fixed" },
		})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fixed", rec.Header().Get("X-Request-ID"))
	})
}

func TestRedactQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"empty", "", ""},
		{"no_token", "a=1&b=2", "a=1&b=2"},
		{"token_only", "token=Bearer%20eyJ.x.y", "token=[REDACTED]"},
		{"token_among_others", "a=1&token=secret&b=2", "a=1&token=[REDACTED]&b=2"},
		{"repeated_token", "token=a&token=b", "token=[REDACTED]&token=[REDACTED]"},
		{"similar_key_kept", "tokens=abc", "tokens=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, middleware.RedactQuery(tt.query, "token"))
		})
	}
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())

	r := chi.NewRouter()
	r.Use(middleware.RequestID(), middleware.Logging(log))
	r.Get("/ws/mail/{identity}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/mail/carol@x?token=Bearer%20secret.jwt.value", nil))

	out := buf.String()
	assert.Contains(t, out, `"status_code":401`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, "token=[REDACTED]")
	assert.NotContains(t, out, "secret.jwt.value")
	assert.Contains(t, out, `"request_id"`)
}

func TestLogging_Skip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	h := middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: log,
		Skip:   func(r *http.Request) bool { return r.URL.Path == "/health/live" },
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Empty(t, buf.String())
}

func TestAuth(t *testing.T) {
	t.Parallel()

	verifier := fakeVerifier{"good": "alice@x"}
	h := middleware.Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.IdentityFromContext(r.Context())
		require.True(t, ok)
		_, _ = io.WriteString(w, id)
	}))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "alice@x"},
		{"lowercase_scheme", "bearer good", http.StatusOK, "alice@x"},
		{"missing", "", http.StatusUnauthorized, `"code":"unauthorized"`},
		{"wrong_scheme", "Basic good", http.StatusUnauthorized, "missing bearer token"},
		{"invalid", "Bearer bad", http.StatusUnauthorized, "invalid or expired token"},
		{"blank_credential", "Bearer   ", http.StatusUnauthorized, "missing bearer token"},
		{"double_scheme", "Bearer Bearer good", http.StatusUnauthorized, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/mail/send", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	h := middleware.BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("within_limit", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("declared_too_large", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is too large")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Contains(t, rec.Body.String(), "request_entity_too_large")
	})

	t.Run("undeclared_too_large", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is too large"))
		req.ContentLength = -1
		req.Header.Del("Content-Length")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
