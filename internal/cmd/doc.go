// Package cmd provides the command-line interface implementation for autoesv.
//
// This package contains all the subcommand implementations for the autoesv
// CLI tool. It uses the Cobra library for command structure and Fang for
// beautiful styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - sort: Copying egg files into per-ESV subdirectories
//   - mount: FUSE mounting of the virtual ESV view
//   - info: Per-file egg summaries
//   - stats: ESV distribution reporting
//   - seed: Test file generation
//   - version: Build metadata reporting
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. The root command coordinates all
// subcommands.
//
// The package leverages the pkx, esv and sorter packages for the core
// operations and the eggfs package for the filesystem view.
package cmd
