// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("file loaded", slog.String("path", name))
//	logger.Error("parse failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions write through a default logger on
// [os.Stderr], which [Config] reconfigures.
//
// # Adding Attributes
//
// Attributes added with [Logger.With] are included in every subsequent
// message:
//
//	logger = logger.With(slog.String("env", "dev"))
//	logger.Info("resolved map") // includes env=dev
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The
// context-unaware variants call their counterparts with
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the
// configured level are discarded.
//
// # Time Formatting
//
// Time formatting is configurable using [WithTimeLayout]. You can
// specify any named layout supported by the [time] package (such as
// "RFC3339" or "RFC3339Nano"), "none" to omit timestamps, or a custom
// layout string.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. With [WithPretty] enabled (default) text records are
// written as colorized key=value lines and JSON records as indented
// objects. Colors are stripped when the output is not a terminal.
package log
