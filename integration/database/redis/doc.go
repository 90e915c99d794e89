// Package redis connects to Redis with retries and exposes a health check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ready := health.Readiness(log, redis.Healthcheck(client))
//
// Connect accepts redis:// and rediss:// URLs and pings the server before
// returning. Failures wrap ErrFailedToParseRedisConnString, ErrRedisNotReady
// or ErrEmptyConnectionURL; Healthcheck failures wrap ErrHealthcheckFailed.
package redis
