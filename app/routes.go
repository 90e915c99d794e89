package app

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/mailpush/core/health"
	"github.com/dmitrymomot/mailpush/core/mail"
	"github.com/dmitrymomot/mailpush/core/notify"
	"github.com/dmitrymomot/mailpush/core/response"
	"github.com/dmitrymomot/mailpush/middleware"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: app.logger,
			Skip:   isProbe,
		}),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.JSONErrorHandler(w, r, response.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.JSONErrorHandler(w, r, response.ErrMethodNotAllowed)
	})

	r.Get("/ping", response.Handler(health.NoContent))
	r.Get("/health/live", response.Handler(health.Liveness))
	r.Get("/health/ready", response.Handler(health.Readiness(app.logger, app.checks...)))

	if app.config.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(app.prom, promhttp.HandlerOpts{Registry: app.prom}))
	}

	ws := notify.NewHandler(
		notify.NewGate(app.verifier),
		app.registry,
		app.config.Notify,
		notify.WithHandlerLogger(app.logger),
		notify.WithHandlerMetrics(app.metrics),
	)
	r.Get("/ws/mail/{"+notify.IdentityParam+"}", ws.ServeHTTP)

	r.Route("/api/mail", func(r chi.Router) {
		r.Use(
			middleware.BodyLimit(app.config.MaxBodySize),
			middleware.Auth(app.verifier),
		)
		r.Group(mail.Routes(app.mail))
	})

	return r
}

func isProbe(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/health/") || r.URL.Path == "/metrics" || r.URL.Path == "/ping"
}
