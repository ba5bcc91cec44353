// Package common provides the pieces shared by the rMutex libraries and the
// command line interface.
//
// Key Components:
//
//   - Logger: Custom logging implementation of dragonboat's logger.ILogger.
//     Libraries obtain their logger with logger.GetLogger("<name>") and the
//     CLI installs the factory and level through InitLoggers.
//
//   - BenchConfig: Configuration of the contention benchmark, with
//     validation and a formatted String representation.
package common
