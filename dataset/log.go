package dataset

import "log/slog"

// Global logger for the dataset package
var log = slog.Default()

// SetLogger configures the global logger
func SetLogger(l *slog.Logger) {
	log = l
}
