// Package logger provides structured logging utilities built on log/slog.
//
// New builds a logger from functional options with environment presets:
//
//	log := logger.New(
//		logger.WithProduction("mailpush"),
//		logger.WithLevel(logger.ParseLevel("debug")),
//	)
//
// Attribute helpers return an empty slog.Attr for zero inputs so they can be
// passed unconditionally:
//
//	log.Warn("notification dropped",
//		logger.Component("notify"),
//		logger.Identity(recipient),
//		logger.Error(err),
//	)
//
// Attributes never carry credentials; callers redact tokens before logging
// query strings.
package logger
