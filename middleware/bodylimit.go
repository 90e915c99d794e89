package middleware

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/mailpush/core/response"
)

const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// BodyLimit rejects requests whose declared length exceeds maxSize
// and caps the readable body at maxSize otherwise.
func BodyLimit(maxSize int64) func(http.Handler) http.Handler {
	if maxSize <= 0 {
		maxSize = 4 * MB
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxSize {
				response.JSONErrorHandler(w, r, response.ErrRequestEntityTooLarge.
					WithMessage(fmt.Sprintf("request body too large, limit is %d bytes", maxSize)).
					WithDetails(map[string]any{"limit": maxSize, "size": r.ContentLength}))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			}
			next.ServeHTTP(w, r)
		})
	}
}
