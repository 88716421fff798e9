// Package pkx decodes the trainer fields of Pokémon egg files.
package pkx

import "errors"

// Sentinel errors for package pkx.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File format errors
	ErrUnsupportedFormat = errors.New("file extension is not a recognized egg format")
	ErrTruncated         = errors.New("file is too short for the declared format")
)
