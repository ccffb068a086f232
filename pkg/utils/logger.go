package utils

import "go.uber.org/zap"

// NewLogger builds the service logger. Debug mode uses zap's development
// config (console encoder, debug level) for local inbox and search sessions;
// otherwise the production config (JSON, info level) with error stacktraces
// disabled.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
