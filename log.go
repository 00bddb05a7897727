package rowcache

import "log/slog"

// Global logger for all rowcache instances
var log = slog.Default()

// SetLogger configures the global logger
func SetLogger(l *slog.Logger) {
	log = l
}
