// Package sorter implements the egg sorting pipeline.
//
// The pipeline is: discover files under an input directory, decode each
// one's trainer fields, compute its ESV, and copy it into a
// zero-padded ESV subdirectory under the output directory. Each file is
// processed independently; failures are collected per file and never
// abort the batch.
//
// Key Components:
//
// Pipeline:
//   - Scan for recursive file discovery
//   - Plan for the pure read-extract-compute step per file
//   - Sort for the concurrent end-to-end run
//   - Materialize for the copy step (idempotent, race-safe mkdir)
//
// Reporting:
//   - Manifest and ManifestEntry for the optional JSON record of a run
//   - Metadata with counts, sizes and timestamps
//
// Sorting the same input into the same output twice produces identical
// placements; copies overwrite with identical bytes.
package sorter
