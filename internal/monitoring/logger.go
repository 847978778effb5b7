package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog with helpers for the request and pricing paths.
type Logger struct {
	*slog.Logger
}

func NewLogger(level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return &Logger{Logger: slog.New(handler)}
}

func NewLoggerFromEnv() *Logger {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return NewLogger(level)
}

// LogRequest records a completed HTTP request.
func (l *Logger) LogRequest(method, path, clientIP string, statusCode int, duration time.Duration) {
	l.Info("http request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("client_ip", clientIP),
		slog.Int("status", statusCode),
		slog.Duration("duration", duration),
	)
}

// LogRun records a completed pricing run.
func (l *Logger) LogRun(profileKey string, rowCount, entityCount int, targetCents int64, duration time.Duration) {
	l.Info("pricing run",
		slog.String("profile", profileKey),
		slog.Int("rows", rowCount),
		slog.Int("entities", entityCount),
		slog.Int64("target_cents", targetCents),
		slog.Duration("duration", duration),
	)
}

// LogAPIError records a request that ended in an error response.
func (l *Logger) LogAPIError(method, path string, statusCode int, err error) {
	l.Error("api error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
	)
}
