// Package cli contains the command line interface for vspec.
//
// # Usage
//
// The CLI reads one or more source files in the vspec configuration
// language and checks, formats, resolves, or browses them:
//
//	vspec check network.vspec
//	vspec fmt json network.vspec
//	vspec resolve --strict network.vspec
//	vspec view network.vspec
//
// resolve is the default command, so a bare source argument resolves
// references and prints the result:
//
//	vspec network.vspec
//
// # Configuration
//
// Flag defaults may be stored in a config file written in the vspec
// language itself, located at $XDG_CONFIG_HOME/vspec/config. The file's
// top-level "config" block maps flag names (with underscores) to
// values. Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o vspec .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/vspec/pprof)
package cli
