// Package server wraps http.Server with graceful shutdown and
// environment-driven configuration.
//
// The Run method returns an errgroup-compatible function, so the server
// participates in the same coordinated lifecycle as the other background
// components:
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Defaults favor the heritage API's traffic shape: a long write timeout
// because generation endpoints stream nothing until the upstream answers.
package server
