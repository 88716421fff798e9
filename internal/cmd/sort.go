package cmd

import (
	"fmt"
	"os"

	"github.com/msikma/autoesv/sorter"
	"github.com/spf13/cobra"
)

// NewSortCmd creates and returns the sort subcommand for the autoesv CLI.
// It handles copying egg files into per-ESV subdirectories.
func NewSortCmd() *cobra.Command {
	var (
		separateFormats bool
		dryRun          bool
		verbose         bool
		manifestPath    string
		jobs            int
	)

	cmd := &cobra.Command{
		Use:   "sort INPUT_DIR OUTPUT_DIR",
		Short: "Copy egg files into per-ESV subdirectories",
		Long: `Copy egg files from INPUT_DIR into per-ESV subdirectories of OUTPUT_DIR.

Each .pk6/.pk7 file is copied to a subdirectory named after its ESV,
zero-padded to four digits (for example OUTPUT_DIR/0123/egg.pk6).
Source files are never modified, and re-running a sort over the same
directories produces the same placements.

Files that are not valid egg files are skipped with a report. If any
placeable file fails, the remaining files are still processed and the
command exits non-zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(args[0], args[1], sortFlags{
				separateFormats: separateFormats,
				dryRun:          dryRun,
				verbose:         verbose,
				manifestPath:    manifestPath,
				jobs:            jobs,
			})
		},
	}

	cmd.Flags().BoolVarP(&separateFormats, "separate-formats", "s", false, "Separate output into pk6/ and pk7/ subdirectories")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Write a JSON manifest of all placements to this path")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of concurrent workers (default: number of CPUs)")

	return cmd
}

type sortFlags struct {
	separateFormats bool
	dryRun          bool
	verbose         bool
	manifestPath    string
	jobs            int
}

func runSort(inputDir, outputDir string, flags sortFlags) error {
	// Validate input directory exists
	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", inputDir)
	}

	if flags.verbose {
		fmt.Printf("Sorting eggs in %s into %s\n", inputDir, outputDir)
		if flags.dryRun {
			fmt.Println("DRY RUN - no changes will be made")
		}
	}

	opts := sorter.Options{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		SeparateFormats: flags.separateFormats,
		DryRun:          flags.dryRun,
		Workers:         flags.jobs,
	}
	if flags.verbose || flags.dryRun {
		opts.Progress = func(p sorter.Placement) {
			fmt.Printf("  %s -> %s\n", p.Source, p.Dest)
		}
	}

	result, err := sorter.Sort(opts)
	if err != nil {
		return err
	}

	for _, skip := range result.Skipped {
		fmt.Printf("skipped %s: %v\n", skip.Path, skip.Err)
	}
	for _, fail := range result.Failed {
		fmt.Printf("failed %s: %v\n", fail.Path, fail.Err)
	}

	manifest := sorter.NewManifest(result.Placed, opts)
	if flags.manifestPath != "" {
		if err := manifest.Save(flags.manifestPath); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		if flags.verbose {
			fmt.Printf("Wrote manifest to %s\n", flags.manifestPath)
		}
	}

	meta := manifest.GenerateMetadata()
	verb := "Sorted"
	if flags.dryRun {
		verb = "Would sort"
	}
	fmt.Printf("%s %d eggs into %d ESV directories (%d skipped, %d failed)\n",
		verb, meta.TotalFileCount, meta.ESVCount, len(result.Skipped), len(result.Failed))

	if !result.OK() {
		return fmt.Errorf("%d of %d files failed", len(result.Failed), len(result.Placed)+len(result.Failed))
	}
	return nil
}
