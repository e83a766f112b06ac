// Package logging provides structured logging for the studio.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the entire application.
//
// # Features
//
//   - Text output for terminals (default), JSON for log collectors
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # text, json
//	  output: "stderr"   # stderr, stdout, discard
//
// Logs go to stderr by default because the convert command prints its
// report on stdout.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting server", "port", 8765)
//	logger.Error("export failed", "error", err)
//
// # Security
//
// Never log secrets, tokens or passwords. Uploaded documents are logged by
// size and session ID only, never by content.
package logging
