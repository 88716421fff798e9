package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	_ "bazil.org/fuse/fs/fstestutil"
	"github.com/msikma/autoesv/eggfs"
	"github.com/msikma/autoesv/version"
	"github.com/spf13/cobra"
)

// NewMountCmd creates and returns the mount subcommand for the autoesv CLI.
// It mounts a read-only FUSE view of an egg collection organized by ESV.
func NewMountCmd() *cobra.Command {
	var separateFormats bool

	cmd := &cobra.Command{
		Use:   "mount INPUT_DIR MOUNTPOINT",
		Short: "Mount a read-only ESV view of an egg collection",
		Long: `Mount a read-only FUSE view of INPUT_DIR at MOUNTPOINT.

The mounted tree shows the same per-ESV layout that the sort command
would produce, without copying anything: reading a file under the
mountpoint reads the original egg file. The view is a snapshot taken
at mount time.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runMount(args[0], args[1], separateFormats)
		},
	}

	cmd.Flags().BoolVarP(&separateFormats, "separate-formats", "s", false, "Separate the view into pk6/ and pk7/ subdirectories")

	return cmd
}

func runMount(inputDir, mountpoint string, separateFormats bool) {
	// Print version info on startup
	fmt.Printf("autoesv %s starting...\n", version.GetFullVersion())

	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		log.Fatalf("Input directory does not exist: %s", inputDir)
	}
	if pathsOverlap(inputDir, mountpoint) {
		log.Fatalf("Mountpoint %s overlaps input directory %s", mountpoint, inputDir)
	}

	// Build the view before mounting so errors surface early
	filesystem, err := eggfs.NewFS(inputDir, separateFormats)
	if err != nil {
		log.Fatalf("Failed to scan egg collection: %v", err)
	}
	for _, skip := range filesystem.Skipped {
		fmt.Printf("skipped %s: %v\n", skip.Path, skip.Err)
	}
	for _, fail := range filesystem.Failed {
		fmt.Printf("failed %s: %v\n", fail.Path, fail.Err)
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("eggfs"),
		fuse.Subtype("eggfs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		log.Println("Received interrupt signal, shutting down...")

		fuse.Unmount(mountpoint)
		c.Close()

		log.Println("Shutdown complete")
		os.Exit(0)
	}()

	log.Printf("autoesv %s mounted %d eggs at %s (input: %s)",
		version.GetVersion(), filesystem.EggCount(), mountpoint, inputDir)
	err = fs.Serve(c, filesystem)
	if err != nil {
		log.Fatal(err)
	}
}

// pathsOverlap reports whether one path contains the other (or they are
// equal). Mounting inside the input directory would make the view
// recurse into itself.
func pathsOverlap(path1, path2 string) bool {
	path1 = filepath.Clean(path1)
	path2 = filepath.Clean(path2)
	if path1 == path2 {
		return true
	}
	sep := string(os.PathSeparator)
	return strings.HasPrefix(path1, path2+sep) || strings.HasPrefix(path2, path1+sep)
}
