// Package pkx decodes the trainer fields of Pokémon egg files.
//
// The package understands the two supported binary layouts (.pk6 and
// .pk7) just enough to read the fields the ESV calculation needs:
// the visible trainer ID, the secret trainer ID, and the personality
// value. Field offsets are fixed per format and sourced from PKHeX's
// structure documentation.
//
// Key Components:
//
// Formats:
//   - Format enum over the two supported layouts
//   - DetectFormat for extension-based format detection
//   - Per-format offset tables with minimum-length requirements
//
// Decoding:
//   - DecodeHeader for the full leading header (info/stats output)
//   - Extract for just the TrainerIdentity fields
//   - Gen 7 display-ID derivation (G7TID/G7SID)
//
// The package deliberately performs no checksum or sanity validation:
// any byte sequence long enough for the declared format is accepted.
package pkx
