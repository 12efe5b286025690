// Package logger provides structured logging for geohttp built on zerolog.
//
// Adapters only ever log at debug level (diagnostics while constructing
// errors) and warn level (dependency compatibility warnings), so the
// default logger is quiet at info level and below in normal operation.
//
//	log := logger.NewDefault("my-app").WithComponent("adapter.pooled")
//	log.Debug("body decode failed", logger.Fields("error", err))
package logger
