// Package main is the entry point for the resumebox MCP server.
//
// resumebox exposes résumé generation and workspace folder management to MCP
// clients. Résumé data is rendered to PDF by a remote rendering service and
// saved under a single sandboxed root directory; caller-supplied folder names
// can never reach outside it. The server supports both stdio and HTTP
// transports.
//
// The application uses Uber's fx framework for dependency injection and lifecycle
// management, cobra for the command line, zap for structured logging and viper
// for configuration.
package main
