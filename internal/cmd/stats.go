package cmd

import (
	"fmt"

	"github.com/msikma/autoesv/esv"
	"github.com/msikma/autoesv/pkx"
	"github.com/msikma/autoesv/sorter"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates and returns the stats subcommand for the autoesv CLI.
// It reports the ESV distribution of a directory tree.
func NewStatsCmd() *cobra.Command {
	var (
		path string
		tsv  int
	)

	cmd := &cobra.Command{
		Use:   "stats [PATH]",
		Short: "Show the ESV distribution of a directory",
		Long: `Show ESV statistics for all egg files in a directory tree.

This recursively walks a directory, decodes every .pk6/.pk7 file and
reports how eggs are distributed across ESVs. With --tsv, it also
lists the eggs that would hatch shiny for a trainer with that TSV.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			return runStats(path, tsv)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to collect statistics for")
	cmd.Flags().IntVarP(&tsv, "tsv", "t", -1, "List eggs matching this trainer shiny value (0-4095)")

	return cmd
}

func runStats(path string, tsv int) error {
	if tsv > int(esv.Max) {
		return fmt.Errorf("tsv %d is out of range (0-%d)", tsv, esv.Max)
	}

	paths, err := sorter.Scan(path)
	if err != nil {
		return fmt.Errorf("error scanning %s: %w", path, err)
	}

	formatCounts := make(map[pkx.Format]int)
	esvCounts := make(map[uint16]int)
	var matches []sorter.Placement
	var skipped int

	for _, p := range paths {
		placement, err := sorter.Plan(p, sorter.Options{})
		if err != nil {
			skipped++
			continue
		}
		formatCounts[placement.Format]++
		esvCounts[placement.ESV]++
		if tsv >= 0 && esv.Matches(uint16(tsv), placement.ESV) {
			matches = append(matches, placement)
		}
	}

	total := 0
	for _, f := range pkx.Formats() {
		total += formatCounts[f]
	}
	fmt.Printf("Total eggs: %d (pk6: %d, pk7: %d)\n", total, formatCounts[pkx.FormatGen6], formatCounts[pkx.FormatGen7])
	fmt.Printf("Distinct ESVs: %d\n", len(esvCounts))
	if skipped > 0 {
		fmt.Printf("Skipped files: %d\n", skipped)
	}

	if tsv >= 0 {
		fmt.Printf("Eggs hatching shiny for TSV %04d: %d\n", tsv, len(matches))
		for _, m := range matches {
			fmt.Printf("  %s\n", m.Source)
		}
	}
	return nil
}
