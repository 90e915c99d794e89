// Package middleware provides net/http middlewares for the API and websocket
// routes. Each middleware has the func(http.Handler) http.Handler shape, so it
// plugs into chi's Use or wraps a handler directly.
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID(), middleware.Logging(log))
//
//	r.Group(func(r chi.Router) {
//		r.Use(middleware.Auth(verifier), middleware.BodyLimit(middleware.MB))
//		r.Post("/api/mail/send", sendHandler)
//	})
//
// Logging redacts credential-bearing query parameters (token by default),
// because the websocket endpoint carries the bearer credential in its query.
package middleware
