// Package logger provides structured logging utilities built on Go's standard
// slog package: a small constructor with functional options and typed
// attribute helpers for the fields this service logs most.
//
//	log := logger.New(
//		logger.WithAppName("itihas"),
//		logger.WithLevelString(cfg.LogLevel),
//		logger.WithJSONFormatter(),
//	)
//
//	log.Info("composite resolved",
//		logger.Endpoint("composite"),
//		logger.CacheHit(false),
//		logger.Elapsed(start),
//	)
//
// Attribute helpers return an empty Attr for nil or zero inputs, so call sites
// never need nil checks.
package logger
