// Package profile provides optional runtime profiling for dfprop.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof -o dfprop .
//
// Without the tag [Start] always returns a no-op [Stopper] and [Modes] is
// empty.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution tracing
//
// # Usage
//
//	p := profile.Start(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//		profile.WithQuiet(true),
//	)
//	defer p.Stop()
//
// The dfprop command exposes the same settings as --pprof-mode and
// --pprof-dir. Profiles are written as {mode}.pprof and analyzed with
//
//	go tool pprof -http=: {dir}/cpu.pprof
//
// With the tag, the package also imports [net/http/pprof], registering its
// handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
