// Package logger provides a structured logging facility based on Zap.
//
// It produces a configured logger instance for both development (console)
// and production (json) environments and integrates with the Fiber web
// framework.
//
// # Request Correlation
//
// The WithRayID helper extracts the RayID (request ID) from a Fiber context
// and attaches it to the log entry, so every log line emitted while serving
// a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
