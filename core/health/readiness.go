package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailpush/core/handler"
	"github.com/dmitrymomot/mailpush/core/logger"
	"github.com/dmitrymomot/mailpush/core/response"
)

// CheckTimeout bounds each readiness check.
const CheckTimeout = 3 * time.Second

// Readiness returns "READY" when every check passes and 503 otherwise.
// nil checks are skipped.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) handler.Func {
	if log == nil {
		log = logger.Discard()
	}

	return func(r *http.Request) handler.Response {
		for _, check := range checks {
			if check == nil {
				continue
			}

			ctx, cancel := context.WithTimeout(r.Context(), CheckTimeout)
			err := check(ctx)
			cancel()

			if err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Component("health"), logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
