package log

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the process-wide text logger at the given level. Unknown
// level names fall back to INFO.
func Setup(level string) {
	var slogLevel slog.Level

	switch strings.ToUpper(level) {
	case "DEBUG":
		slogLevel = slog.LevelDebug
	case "WARN":
		slogLevel = slog.LevelWarn
	case "ERROR":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	})

	slog.SetDefault(slog.New(handler))
}
