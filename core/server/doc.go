// Package server runs an http.Handler with graceful shutdown and
// environment-driven configuration.
//
//	var cfg server.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	srv, err := server.NewFromConfig(cfg,
//		server.WithLogger(log),
//		server.WithOnShutdown(func() { registry.CloseAll() }),
//	)
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// http.Server.Shutdown waits for in-flight requests but ignores hijacked
// connections. Hooks registered with WithOnShutdown run when shutdown begins
// and are where websocket sessions get closed.
package server
