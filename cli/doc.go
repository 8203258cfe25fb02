// Package cli contains the command line interface for dfprop.
//
// # Usage
//
//	dfprop [flags] <command> [args]
//
// Commands resolve a logical document path, such as conf/db.dfprop, under a
// root directory and an optional environment tag:
//
//	dfprop get --root ./conf --env dev db.dfprop
//	dfprop get --shape string-map db.dfprop host
//	dfprop eval db.dfprop 'host + ":" + port'
//	dfprop tree --env qa db.dfprop
//	dfprop repl db.dfprop
//	dfprop fmt --as yaml - < db.dfprop
//
// # Configuration Loader
//
// Flag defaults are read from config.dfprop in the user configuration
// directory through a Kong configuration loader ([loadConfig]). The file is a
// dfprop map whose keys are flag names; nested maps join their keys with
// hyphens. dfprop init writes the current flag values to that file. A
// config.json alongside it is also honored.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o dfprop .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/dfprop/pprof)
package cli
