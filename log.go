package willow3d

import "log/slog"

var logger = slog.Default().With("component", "willow3d")

// SetLogger replaces the logger used for debug stats, tree warnings and
// screenshot errors. A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l.With("component", "willow3d")
}
