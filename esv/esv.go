// Package esv implements the Egg Shiny Value calculation and the
// directory layout derived from it.
//
// A trainer's TSV is (TID xor SID) >> 4 and an egg's ESV is
// (PIDhigh xor PIDlow) >> 4, both integers from 0-4095. An egg hatches
// shiny exactly when its ESV equals the hatching trainer's TSV, which
// is the same condition as the full xor chain being below 16.
package esv

import (
	"fmt"
	"path/filepath"

	"github.com/msikma/autoesv/pkx"
)

// Max is the largest possible ESV or TSV value.
const Max = 0xFFFF >> 4

// TSV returns the Trainer Shiny Value for a trainer ID pair.
func TSV(tid, sid uint16) uint16 {
	return (tid ^ sid) >> 4
}

// FromPID returns the ESV of an egg with the given personality value.
func FromPID(pid uint32) uint16 {
	high := uint16(pid >> 16)
	low := uint16(pid)
	return (high ^ low) >> 4
}

// FromIdentity returns the ESV for extracted trainer fields.
func FromIdentity(id pkx.TrainerIdentity) uint16 {
	return FromPID(id.PID)
}

// Matches reports whether an egg with the given ESV hatches shiny for a
// trainer with the given TSV.
func Matches(tsv, esv uint16) bool {
	return tsv == esv
}

// DirName returns the subdirectory name for an ESV. Values are
// zero-padded to four digits so directory listings sort correctly.
func DirName(esv uint16) string {
	return fmt.Sprintf("%04d", esv)
}

// Destination returns the path an egg file should be copied to.
// When separateFormats is true a per-format subdirectory is inserted
// between the output root and the ESV directory, so .pk6 and .pk7 eggs
// with the same ESV never share a leaf directory.
func Destination(outputRoot string, esv uint16, format pkx.Format, separateFormats bool, filename string) string {
	if separateFormats {
		return filepath.Join(outputRoot, format.String(), DirName(esv), filename)
	}
	return filepath.Join(outputRoot, DirName(esv), filename)
}
