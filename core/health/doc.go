// Package health provides liveness and readiness probes.
//
//	r.Get("/health/live", response.Handler(health.Liveness))
//	r.Get("/health/ready", response.Handler(health.Readiness(log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	)))
//
// Checks follow the func(context.Context) error signature.
package health
