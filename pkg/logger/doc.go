// Package logger builds slog loggers with the conventions used across this
// module: JSON output at info level by default, with a text/debug variant
// for interactive use.
//
//	log := logger.New(
//	    logger.WithDevelopment("hacauth"),
//	    logger.WithAttr(slog.String("environment", "local")),
//	)
//
// The library itself never logs unless a logger is injected; New exists so
// callers wiring one up get consistent output.
package logger
