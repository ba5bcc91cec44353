// Package cmd implements the command-line interface of rMutex. The commands
// exercise the mutex and lockmgr libraries inside a single process.
//
// The package is organized into several subpackages:
//
//   - bench: Lock contention benchmark with latency percentiles and metrics
//   - demo: Walk-through of the locking scenarios with a printed trace
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See rmutex -help for a list of all commands.
package cmd
