// Package main provides the autoesv command-line interface.
//
// autoesv organizes Pokémon egg files (.pk6 and .pk7) into subdirectories
// named after their Egg Shiny Value (ESV). An egg hatches shiny when its
// ESV matches the trainer's TSV, so sorting a collection by ESV makes it
// trivial to find the eggs worth hatching for a given trainer.
//
// The main binary supports multiple subcommands:
//   - sort: Copy egg files into per-ESV subdirectories
//   - mount: Mount a read-only FUSE view of a collection organized by ESV
//   - info: Print a summary line for individual egg files
//   - stats: Show ESV distribution for a directory
//   - seed: Generate random test egg files
//   - version: Show detailed version information
package main
