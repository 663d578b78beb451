// Package logger provides structured logging capabilities.
//
// The logger package sets up and configures the application's logging
// system using zap. All output goes to stderr so the stdio MCP transport
// keeps stdout for protocol messages.
//
// Usage:
//
//	logger, err := logger.New("production", "info")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.Info("resumebox started")
package logger
