// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
// A package-level default logger writes text to stderr at [LevelInfo]. It is
// reconfigured with [Config] and used by the package-level functions such as
// [Info] and [Debug]. Library code that accepts a [*slog.Logger] is handed the
// default through [Slog].
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError].
package log
