package middleware

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/mailpush/core/logger"
)

const redacted = "[REDACTED]"

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip excludes requests from logging, e.g. health probes.
	Skip func(r *http.Request) bool
	// Logger defaults to a discard logger.
	Logger *slog.Logger
	// LogLevel for successful requests (default: info).
	LogLevel slog.Level
	// SensitiveQueryParams are redacted from the logged query (default: token).
	SensitiveQueryParams []string
	// SlowRequestThreshold logs slower requests at warn level (default: 5s).
	SlowRequestThreshold time.Duration
	// Component name for structured logging (default: http).
	Component string
}

// Logging logs one line per completed request.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.SensitiveQueryParams == nil {
		cfg.SensitiveQueryParams = []string{"token"}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			duration := time.Since(start)

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Query(RedactQuery(r.URL.RawQuery, cfg.SensitiveQueryParams...)),
				logger.RemoteAddr(r.RemoteAddr),
				logger.StatusCode(wrapped.statusCode),
				logger.Count("bytes_out", wrapped.size),
				logger.Latency(duration),
			}
			if id, ok := GetRequestID(r.Context()); ok {
				attrs = append(attrs, logger.RequestID(id))
			}

			level := cfg.LogLevel
			msg := "HTTP request completed"
			switch {
			case wrapped.hijacked:
				msg = "HTTP connection upgraded"
			case wrapped.statusCode >= 500:
				level = slog.LevelError
			case wrapped.statusCode >= 400:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, msg, attrs...)
		})
	}
}

// RedactQuery replaces the values of the named parameters in a raw query.
// Parameter order and the other values are kept byte for byte.
func RedactQuery(rawQuery string, keys ...string) string {
	if rawQuery == "" || len(keys) == 0 {
		return rawQuery
	}
	pairs := strings.Split(rawQuery, "&")
	for i, pair := range pairs {
		key, _, _ := strings.Cut(pair, "=")
		if slices.Contains(keys, key) {
			pairs[i] = key + "=" + redacted
		}
	}
	return strings.Join(pairs, "&")
}

// responseWriter records status and size. It forwards Hijack so websocket
// upgrades work behind the logger.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
	hijacked      bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("middleware: response writer does not support hijacking")
	}
	conn, brw, err := h.Hijack()
	if err == nil {
		rw.hijacked = true
		rw.statusCode = http.StatusSwitchingProtocols
	}
	return conn, brw, err
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
