package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/dfprop/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Info("resolved map", slog.String("path", "conf/db"), slog.Int("entries", 3))
	// Output: level=INFO msg=resolved map path=conf/db entries=3
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"),
		log.WithPretty(false),
		log.WithFormat(log.FormatJSON))

	logger.Trace("candidate", slog.String("path", "dev/db.dfprop"))
	// Output: {"level":"TRACE","msg":"candidate","path":"dev/db.dfprop"}
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn), log.WithTimeLayout("none"))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	// Output: level=WARN msg=warning message key=value
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger = logger.With(slog.String("env", "dev"))

	logger.Info("processing document")
	// Output: level=INFO msg=processing document env=dev
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout, log.WithLevel(log.LevelDebug))

	logger.InfoContext(ctx, "processing request with context")
	logger.DebugContext(ctx, "request details", slog.String("method", "POST"))
}
