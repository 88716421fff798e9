// Package version provides version information and build metadata for autoesv.
//
// This package handles version reporting for the autoesv application, supporting
// both compile-time version injection via build flags and runtime version
// detection using Go's build info. It provides a flexible versioning system that
// works in development, CI/CD, and release scenarios.
//
// Version Information Sources:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// The package provides multiple version formats:
//   - GetVersion(): Simple version string
//   - GetFullVersion(): Formatted version with commit and build date
//   - GetInfo(): Complete version information as a struct
//   - PrintVersion(): Human-readable version output
package version
