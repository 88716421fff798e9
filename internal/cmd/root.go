package cmd

import (
	"github.com/msikma/autoesv/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the autoesv CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autoesv",
		Short: "autoesv - Organize Pokémon egg files by their Egg Shiny Value",
		Long: `autoesv organizes Pokémon egg files (.pk6 and .pk7) based on their ESV.

An egg's ESV (Egg Shiny Value, an integer from 0-4095) determines which
trainers it hatches shiny for: the hatch is shiny exactly when the ESV
matches the trainer's TSV. Sorting a collection into per-ESV
subdirectories makes it trivial to find the eggs worth hatching.

Use subcommands to perform different operations:
  - sort: Copy egg files into per-ESV subdirectories
  - mount: Mount a read-only FUSE view organized by ESV, without copying
  - info: Print a summary line for individual egg files
  - stats: Show the ESV distribution of a directory
  - seed: Generate random test egg files
  - version: Show detailed version information`,
		Version: version.GetFullVersion(),
	}

	groupSorting := "sorting"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupSorting,
		Title: "Sorting Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	sortCmd := NewSortCmd()
	mountCmd := NewMountCmd()
	infoCmd := NewInfoCmd()
	statsCmd := NewStatsCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	sortCmd.GroupID = groupSorting
	mountCmd.GroupID = groupSorting
	infoCmd.GroupID = groupUtilities
	statsCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// NewVersionCmd creates and returns the version subcommand for the
// autoesv CLI. Unlike --version it prints the full build metadata.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show detailed version information",
		Long: `Show detailed version information.

Prints the version, package name, git commit and build date. The
--version flag prints the short form of the same information.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion("autoesv")
		},
	}
}
