package cmd

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/msikma/autoesv/pkx"
	"github.com/spf13/cobra"
)

// storedSize is the size of a generated egg file. Real pk6/pk7 files
// are 232 bytes in their stored (boxed) form.
const storedSize = 232

// NewSeedCmd creates and returns the seed subcommand for the autoesv CLI.
// It generates random well-formed egg files for testing.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		formatName string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate random test egg files",
		Long: `Generate random egg files for testing autoesv functionality.

Creates .pk6 and/or .pk7 files with randomized trainer IDs, personality
values and species. The header fields follow the real layout, so the
generated files sort and decode like genuine eggs. Filenames are
random UUIDs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(outputPath, fileCount, formatName, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 1000, "Number of files to generate")
	cmd.Flags().StringVarP(&formatName, "format", "f", "both", "Format to generate: pk6, pk7 or both")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount int, formatName string, verbose bool) error {
	var formats []pkx.Format
	switch formatName {
	case "pk6":
		formats = []pkx.Format{pkx.FormatGen6}
	case "pk7":
		formats = []pkx.Format{pkx.FormatGen7}
	case "both":
		formats = pkx.Formats()
	default:
		return fmt.Errorf("unknown format %q (want pk6, pk7 or both)", formatName)
	}

	if verbose {
		fmt.Printf("Generating %d test eggs in %s\n", fileCount, outputPath)
	}

	// Create output directory
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filesCreated := 0
	for filesCreated < fileCount {
		formatIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(formats))))
		format := formats[formatIdx.Int64()]

		data, err := randomEgg(format)
		if err != nil {
			return fmt.Errorf("failed to generate egg data: %w", err)
		}

		filename := uuid.New().String() + format.Ext()
		filePath := filepath.Join(outputPath, filename)
		if err := os.WriteFile(filePath, data, 0644); err != nil {
			log.Printf("Warning: Failed to write file %s: %v", filePath, err)
			continue
		}

		filesCreated++
		if verbose && filesCreated%1000 == 0 {
			fmt.Printf("Created %d/%d files...\n", filesCreated, fileCount)
		}
	}

	if verbose {
		fmt.Printf("Successfully created %d files\n", filesCreated)
	}
	return nil
}

// randomEgg builds one stored-size egg with randomized header fields.
func randomEgg(format pkx.Format) ([]byte, error) {
	maxSpecies := int64(721) // national dex cap in gen 6
	if format == pkx.FormatGen7 {
		maxSpecies = 802
	}

	ec, err := rand.Int(rand.Reader, big.NewInt(1<<32))
	if err != nil {
		return nil, err
	}
	species, err := rand.Int(rand.Reader, big.NewInt(maxSpecies))
	if err != nil {
		return nil, err
	}
	tid, err := rand.Int(rand.Reader, big.NewInt(1<<16))
	if err != nil {
		return nil, err
	}
	sid, err := rand.Int(rand.Reader, big.NewInt(1<<16))
	if err != nil {
		return nil, err
	}
	pid, err := rand.Int(rand.Reader, big.NewInt(1<<32))
	if err != nil {
		return nil, err
	}

	header := pkx.Header{
		EncryptionConstant: uint32(ec.Int64()),
		Species:            uint16(species.Int64() + 1),
		TID:                uint16(tid.Int64()),
		SID:                uint16(sid.Int64()),
		PID:                uint32(pid.Int64()),
	}

	data := make([]byte, storedSize)
	copy(data, header.Encode(format))
	// Randomize the trailer so files are content-unique
	if _, err := rand.Read(data[format.MinLen():]); err != nil {
		return nil, err
	}
	return data, nil
}
