// Package eggfs implements a read-only FUSE view of an egg collection
// organized by ESV.
//
// Mounting a collection gives the same directory layout the sort
// command would produce, without copying a single byte: the root lists
// zero-padded ESV directories (optionally under pk6/pk7 format
// directories) and each ESV directory lists the egg files that hatch
// shiny for a trainer with that TSV. File reads are served straight
// from the source files.
//
// The view is a snapshot taken at mount time. The main entry point is
// NewFS(), which scans the input directory and builds the virtual
// tree; the result can be mounted with the bazil.org/fuse library.
package eggfs
